package cmd

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/spf13/cobra"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve the HTTP API as an AWS Lambda behind API Gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cmd, os.Stdout)
		if err != nil {
			return err
		}
		defer a.Close()

		adapter := ginadapter.New(a.router())
		a.log.Info().Msg("starting lambda handler")
		lambda.Start(adapter.ProxyWithContext)
		return nil
	},
}
