package work

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"minutes-tracker/cmd/cli/config"
	"minutes-tracker/cmd/cli/output"
)

// workEntry mirrors the API's work payload.
type workEntry struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Minutes     int64  `json:"minutes"`
}

// InitWork registers the work subcommands on the root command.
func InitWork(rootCmd *cobra.Command) {
	workCmd := &cobra.Command{
		Use:   "work",
		Short: "Manage work entries",
	}

	workCmd.AddCommand(
		listWorkCmd(),
		addWorkCmd(),
		deleteWorkCmd(),
	)

	rootCmd.AddCommand(workCmd)
}

// ==========================
// LIST
// ==========================
func listWorkCmd() *cobra.Command {
	var from, to string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search work entries by date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			params := url.Values{}
			params.Set("pageNumber", strconv.Itoa(page))
			if from != "" {
				params.Set("fromDate", from)
			}
			if to != "" {
				params.Set("toDate", to)
			}

			var result struct {
				CurrentPage int64       `json:"currentPage"`
				TotalPages  int64       `json:"totalPages"`
				Works       []workEntry `json:"works"`
			}
			if err := apiRequest("GET", "/work?"+params.Encode(), token, nil, &result); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(result.Works))
			for _, w := range result.Works {
				rows = append(rows, []interface{}{w.ID, w.Date, w.Time, w.Description, w.Minutes})
			}
			output.RenderTable([]string{"ID", "Date", "Time", "Description", "Minutes"}, rows)
			fmt.Printf("Page %d of %d\n", result.CurrentPage, result.TotalPages)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "From date (yyyy/MM/dd)")
	cmd.Flags().StringVar(&to, "to", "", "To date (yyyy/MM/dd)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")

	return cmd
}

// ==========================
// ADD
// ==========================
func addWorkCmd() *cobra.Command {
	var date, timeOfDay, description string
	var minutes int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new work entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			payload := []map[string]interface{}{{
				"date":        date,
				"time":        timeOfDay,
				"description": description,
				"minutes":     minutes,
			}}

			var saved []workEntry
			if err := apiRequest("POST", "/work", token, payload, &saved); err != nil {
				return err
			}
			for _, w := range saved {
				fmt.Printf("Saved work %d: %s %s %q (%d minutes)\n", w.ID, w.Date, w.Time, w.Description, w.Minutes)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (yyyy/MM/dd)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time of day (HH:mm)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().Int64Var(&minutes, "minutes", 0, "Minutes spent")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("minutes")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteWorkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete work entries by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", a)
				}
				ids = append(ids, id)
			}

			if err := apiRequest("DELETE", "/work", token, ids, nil); err != nil {
				return err
			}
			fmt.Printf("Deleted %d work entries.\n", len(ids))
			return nil
		},
	}
}

func apiRequest(method, path, token string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		return json.Unmarshal(respBody, out)
	}
	return nil
}
