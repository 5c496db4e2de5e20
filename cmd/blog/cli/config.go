package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/machaira/blog/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var envFiles = []string{".env", ".env.local"}

// loadConfig 先加载 .env 文件再读取配置，已存在的环境变量不会被覆盖。
func loadConfig(path string) (*config.AppConfig, error) {
	loadEnvFiles(".")
	if path != "" {
		loadEnvFiles(filepath.Dir(path))
	} else {
		loadEnvFiles("./config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadEnvFiles(dir string) {
	for _, envFile := range envFiles {
		// 文件不存在时忽略
		_ = godotenv.Load(filepath.Join(dir, envFile))
	}
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management utilities",
		// 生成配置不需要读取现有配置
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(newConfigGenerateCommand())

	return cmd
}

func newConfigGenerateCommand() *cobra.Command {
	var (
		outputDir string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an example configuration file",
		Long: `Generate blog.yaml with the built-in defaults.

Every key can also be overridden with a BLOG_ prefixed environment
variable, for example BLOG_DATABASE_DRIVER=postgres.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			filename := filepath.Join(outputDir, "blog.yaml")
			if _, err := os.Stat(filename); err == nil && !overwrite {
				fmt.Fprintf(out, "Skipping %s (file exists, use --overwrite to replace)\n", filename)
				return nil
			}

			data, err := yaml.Marshal(config.GetDefault())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("failed to write config file %s: %w", filename, err)
			}

			fmt.Fprintf(out, "Generated %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", ".", "output directory for configuration files")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files")

	return cmd
}
