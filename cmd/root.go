package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "topicd",
		Short:         "Rotate answered Telegram forum General topics into named threads",
		Long:          "topicd watches the General topic of Telegram forum supergroups. Once a human question gets a reply it renames that topic after the question, opens a fresh General and posts a welcome message.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newRunCmd(app),
		newCheckCmd(app),
		newRotateCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
