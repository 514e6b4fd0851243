package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobboard/internal/app"
	"jobboard/internal/view"
)

var applyCmd = &cobra.Command{
	Use:   "apply JOB_ID",
	Short: "Apply for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		resumePath, _ := cmd.Flags().GetString("resume")
		coverLetter, _ := cmd.Flags().GetString("cover-letter")

		a, err := newApp(cmd, "apply")
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.State()
		if err := state.RequireSession(); err != nil {
			a.Fail()
			return err
		}
		job, err := state.Job(args[0])
		if err != nil {
			a.Fail()
			return err
		}
		if job.IsExternal {
			fmt.Printf("%s is listed externally. Apply on %s: %s\n", job.Title, job.Company, job.ApplyLink)
			return nil
		}

		form := state.ApplyDefaults(job.ID)
		if name != "" {
			form.Name = name
		}
		if email != "" {
			form.Email = email
		}
		form.CoverLetter = coverLetter
		if resumePath != "" {
			resume, err := app.LoadResume(resumePath)
			if err != nil {
				a.Fail()
				return err
			}
			form.Resume = resume
		}

		fmt.Printf("Applying for %s at %s...\n", job.Title, job.Company)
		application, err := a.Apply(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Println("Application submitted successfully!")
		fmt.Printf("ID: %s\n", application.ID)
		return nil
	},
}

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "View your applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "applications list")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.State().RequireSession(); err != nil {
			a.Fail()
			return err
		}
		view.NewRenderer(os.Stdout).Applications(a.State())
		return nil
	},
}

var applicationsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "applications show")
		if err != nil {
			return err
		}
		defer a.Close()

		application, err := a.State().Application(args[0])
		if err != nil {
			a.Fail()
			return err
		}
		view.NewRenderer(os.Stdout).ApplicationDetail(a.State(), application)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().String("name", "", "Full name (defaults to your account name)")
	applyCmd.Flags().String("email", "", "Email (defaults to your account email)")
	applyCmd.Flags().String("resume", "", "Path to your resume (PDF or Word, at most 2MB)")
	applyCmd.Flags().String("cover-letter", "", "Cover letter text")

	applicationsCmd.AddCommand(applicationsListCmd)
	applicationsCmd.AddCommand(applicationsShowCmd)
	rootCmd.AddCommand(applicationsCmd)
}
