package main

import (
	"context"
	"fmt"
	"strings"

	"signify/cmd/signify/ui"
	"signify/internal/api"

	"github.com/spf13/cobra"
)

var (
	surveysStatus     string
	surveyTitle       string
	surveyDescription string
	surveyStartDate   string
	surveyEndDate     string
	responsesSurveyID string
)

var surveysCmd = &cobra.Command{
	Use:   "surveys",
	Short: "Manage health signal surveys",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var surveysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List surveys",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		surveys, err := client.Surveys(context.Background(), nil)
		if err != nil {
			return err
		}

		table := ui.NewTable("Surveys", "ID", "Title", "Status", "Responses", "Created")
		table.AlignRight(3)
		for _, s := range surveys {
			if surveysStatus != "" && s.Status != surveysStatus {
				continue
			}
			table.AddRow(s.SurveyID, ui.Truncate(s.Title, 40), s.Status,
				fmt.Sprintf("%d", s.ResponseCount()), api.FormatTimestamp(s.CreatedAt))
		}
		fmt.Println(table.View(ui.DefaultStyles()))
		return nil
	},
}

var surveysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft survey",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if strings.TrimSpace(surveyTitle) == "" {
			return fmt.Errorf("--title is required")
		}
		survey, err := client.CreateSurvey(context.Background(), api.CreateSurvey{
			Title:       surveyTitle,
			Description: surveyDescription,
			Status:      "draft",
			StartDate:   surveyStartDate,
			EndDate:     surveyEndDate,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s: %s\n", survey.SurveyID, survey.Title)
		return nil
	},
}

var surveysDeleteCmd = &cobra.Command{
	Use:   "delete [survey-id]",
	Short: "Delete a survey and its responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := client.DeleteSurvey(context.Background(), args[0]); err != nil {
			if apiErr := api.AsError(err); apiErr != nil {
				return fmt.Errorf("%s", apiErr.Message)
			}
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var responsesCmd = &cobra.Command{
	Use:   "responses",
	Short: "List submitted responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		responses, err := client.Responses(context.Background(), responsesSurveyID)
		if err != nil {
			return err
		}
		table := ui.NewTable("Responses", "ID", "Risk", "District", "Sector", "Submitted")
		for _, r := range responses {
			risk := r.RiskSignal
			if risk == "" {
				risk = "-"
			}
			table.AddRow(r.ResponseID, risk, ui.Truncate(r.District, 18),
				ui.Truncate(r.Sector, 14), api.FormatTimestamp(r.SubmittedAt))
		}
		fmt.Println(table.View(ui.DefaultStyles()))
		return nil
	},
}

func init() {
	surveysListCmd.Flags().StringVar(&surveysStatus, "status", "", "filter by status (active, draft, archived)")
	surveysCreateCmd.Flags().StringVar(&surveyTitle, "title", "", "survey title")
	surveysCreateCmd.Flags().StringVar(&surveyDescription, "description", "", "survey description")
	surveysCreateCmd.Flags().StringVar(&surveyStartDate, "start", "", "start date (YYYY-MM-DD)")
	surveysCreateCmd.Flags().StringVar(&surveyEndDate, "end", "", "end date (YYYY-MM-DD)")
	responsesCmd.Flags().StringVar(&responsesSurveyID, "survey", "", "limit to one survey")

	surveysCmd.AddCommand(surveysListCmd)
	surveysCmd.AddCommand(surveysCreateCmd)
	surveysCmd.AddCommand(surveysDeleteCmd)
}
