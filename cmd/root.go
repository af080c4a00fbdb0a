package cmd

import (
	"os"

	"github.com/spf13/viper"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "photo-gallery",
	Short: "Home server photo gallery",
	Long: `Home server photo gallery.

Configuration is read from a dotenv file (--config, default ./.env) and
environment variables using the same flat keys, e.g. SERVER_PORT,
STORAGE_TYPE, UPLOAD_MAX_SIZE_MB, CACHE_TYPE, EVENTS_KAFKA_BROKERS.`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCmd.Run(cmd, args)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "dotenv config file with flat keys such as UPLOAD_DIR and DB_TYPE (default ./.env)")
	err := viper.BindPFlag("config_file_path", rootCmd.PersistentFlags().Lookup("config"))
	if err != nil {
		return
	}
}
