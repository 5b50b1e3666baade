package main

import (
	"context"
	"fmt"
	"strings"

	"signify/internal/api"

	"github.com/spf13/cobra"
)

var (
	bulkMessage string
	bulkNumbers []string
)

var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "SMS gateway operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var smsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Check SMS gateway connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		result, err := client.TestGateway(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Gateway %s: %s\n", result.Status, result.Message)
		return nil
	},
}

var smsBulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Send a bulk SMS to explicit numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if strings.TrimSpace(bulkMessage) == "" {
			return fmt.Errorf("--message is required")
		}
		if len(bulkNumbers) == 0 {
			return fmt.Errorf("--to is required at least once")
		}
		result, err := client.SendBulkSMS(context.Background(), api.BulkSMS{
			PhoneNumbers: bulkNumbers,
			Message:      bulkMessage,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Sent to %d recipients, %d failed\n", result.Success, result.Failed)
		return nil
	},
}

func init() {
	smsBulkCmd.Flags().StringVar(&bulkMessage, "message", "", "message text")
	smsBulkCmd.Flags().StringSliceVar(&bulkNumbers, "to", nil, "recipient phone number (repeatable)")

	smsCmd.AddCommand(smsTestCmd)
	smsCmd.AddCommand(smsBulkCmd)
}
