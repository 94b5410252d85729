package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/govscope/govscope/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "govscope",
	Short: "A page-quality dashboard for government websites.",
	Long: `govscope audits a fixed list of government websites with the Lighthouse
engine (via the PageSpeed Insights API), keeps versioned monthly reports,
and computes cross-site rankings and score trends from the history.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.govscope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("datadir", "D", "", "Data directory holding countries.json and reports/ (default: ./data)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".govscope")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.govscope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("datadir", "data")
	viper.SetDefault("pagespeed.key", "")
	viper.SetDefault("pagespeed.strategy", "mobile")
	viper.SetDefault("audit.delay", 3)
	viper.SetDefault("audit.timeout", 120)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// dataDir resolves the data directory: flag first, then config.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("datadir"); dir != "" {
		return dir
	}
	return viper.GetString("datadir")
}
