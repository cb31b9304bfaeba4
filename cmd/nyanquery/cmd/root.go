package cmd

import (
	goflag "flag"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute builds and runs the nyanquery root command.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "nyanquery",
		Short: "nyanquery runs a small in-memory nyan object hierarchy through a patch transaction",
	}

	rootCmd.PersistentFlags().Int("verbosity", 0, "glog -v level for loader/transaction diagnostics.")

	cfgFile := rootCmd.PersistentFlags().String("config_file", "", "Path to config file.")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()

		// glog reads its -v level off the stdlib flag package, not
		// pflag, so bridge the bound verbosity value across.
		if err := goflag.Set("v", strconv.Itoa(viper.GetInt("verbosity"))); err != nil {
			return fmt.Errorf("error setting glog verbosity: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
