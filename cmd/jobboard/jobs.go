package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobboard/internal/board"
	"jobboard/internal/model"
	"jobboard/internal/view"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and post jobs",
}

func criteriaFromFlags(cmd *cobra.Command) model.Criteria {
	search, _ := cmd.Flags().GetString("search")
	location, _ := cmd.Flags().GetString("location")
	jobType, _ := cmd.Flags().GetString("type")
	return model.Criteria{Search: search, Location: location, Type: jobType}
}

func printPage(state *board.State) {
	if total := state.TotalPages(); total > 0 {
		fmt.Printf("Page %d of %d\n\n", state.CurrentPage(), total)
	}
	view.NewRenderer(os.Stdout).JobPage(state)
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs matching the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")

		a, err := newApp(cmd, "jobs list")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ListJobs(criteriaFromFlags(cmd), page); err != nil {
			return err
		}
		printPage(a.State())
		return nil
	},
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search jobs, optionally refreshing listings from the job API",
	RunE: func(cmd *cobra.Command, args []string) error {
		useAPI, _ := cmd.Flags().GetBool("api")
		page, _ := cmd.Flags().GetInt("page")

		a, err := newApp(cmd, "jobs search")
		if err != nil {
			return err
		}
		defer a.Close()

		fetched, warning := a.SearchJobs(cmd.Context(), criteriaFromFlags(cmd), useAPI)
		if warning != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s\n\n", board.UserMessage(warning))
		} else if fetched > 0 {
			fmt.Printf("Fetched %d job(s) from the job API\n\n", fetched)
		}
		if page > 1 {
			if err := a.State().SetPage(page); err != nil {
				return err
			}
		}
		printPage(a.State())
		return nil
	},
}

var jobsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Replace external listings with a fresh batch from the job API",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetString("location")

		a, err := newApp(cmd, "jobs fetch")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.FetchJobs(cmd.Context(), query, location)
		if err != nil {
			return err
		}
		fmt.Printf("Fetched %d job(s)\n", n)
		return nil
	},
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new job",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		company, _ := cmd.Flags().GetString("company")
		location, _ := cmd.Flags().GetString("location")
		jobType, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")

		a, err := newApp(cmd, "jobs post")
		if err != nil {
			return err
		}
		defer a.Close()

		job, err := a.PostJob(model.JobPosting{
			Title:       title,
			Company:     company,
			Location:    location,
			Type:        jobType,
			Description: description,
		})
		if err != nil {
			return err
		}
		fmt.Println("Job posted successfully!")
		fmt.Printf("ID: %s\n", job.ID)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through jobs interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "browse")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ListJobs(criteriaFromFlags(cmd), 1); err != nil {
			return err
		}
		return view.NewBrowser(a.State(), os.Stdin, os.Stdout).Run()
	},
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Match title, company or location")
	cmd.Flags().StringP("location", "l", "", "Match location")
	cmd.Flags().StringP("type", "t", "", "Match job type exactly (e.g. Full-time)")
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	addFilterFlags(jobsListCmd)
	jobsListCmd.Flags().IntP("page", "p", 1, "Page to show")

	jobsCmd.AddCommand(jobsSearchCmd)
	addFilterFlags(jobsSearchCmd)
	jobsSearchCmd.Flags().IntP("page", "p", 1, "Page to show")
	jobsSearchCmd.Flags().Bool("api", false, "Fetch listings from the job API before searching")

	jobsCmd.AddCommand(jobsFetchCmd)
	jobsFetchCmd.Flags().StringP("query", "q", "", "Search query (default from config)")
	jobsFetchCmd.Flags().StringP("location", "l", "", "Location to search in")

	jobsCmd.AddCommand(jobsPostCmd)
	jobsPostCmd.Flags().String("title", "", "Job title")
	jobsPostCmd.Flags().String("company", "", "Company name")
	jobsPostCmd.Flags().String("location", "", "Job location")
	jobsPostCmd.Flags().String("type", "", "Job type (e.g. Full-time, Part-time)")
	jobsPostCmd.Flags().String("description", "", "Job description")

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(browseCmd)
	addFilterFlags(browseCmd)
}
