package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"minutes-tracker/cmd/cli/config"
)

// InitUser registers the user subcommands on the root command.
func InitUser(rootCmd *cobra.Command) {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Show account info and manage the daily minute cap",
	}

	userCmd.AddCommand(showUserCmd(), limitUserCmd())
	rootCmd.AddCommand(userCmd)
}

// ==========================
// SHOW
// ==========================
func showUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the logged in user's cap and today's minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			req, err := http.NewRequest("GET", config.APIURL()+"/user", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var info struct {
				Username         string `json:"username"`
				MaxMinutesPerDay *int64 `json:"maxMinutesPerDay"`
				TodaysMinutes    int64  `json:"todaysMinutes"`
			}
			if err := json.Unmarshal(body, &info); err != nil {
				return err
			}

			fmt.Printf("User: %s\n", info.Username)
			if info.MaxMinutesPerDay != nil {
				fmt.Printf("Daily cap: %d minutes\n", *info.MaxMinutesPerDay)
			} else {
				fmt.Println("Daily cap: none")
			}
			fmt.Printf("Today: %d minutes\n", info.TodaysMinutes)
			return nil
		},
	}
}

// ==========================
// LIMIT
// ==========================
func limitUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limit [minutes]",
		Short: "Set the daily minute cap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			newMax, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[0])
			}

			data, _ := json.Marshal(newMax)
			req, err := http.NewRequest("PUT", config.APIURL()+"/user", bytes.NewBuffer(data))
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			fmt.Printf("Daily cap set to %d minutes.\n", newMax)
			return nil
		},
	}
}
