package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf|resume.docx>",
	Short: "Analyze a resume and trigger the job search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		email, _ := cmd.Flags().GetString("email")
		name := filepath.Base(args[0])
		log.Debug("analyzing resume", zap.String("file", name))

		res, err := newClient().AnalyzeResume(cmd.Context(), name, f, email)
		if err != nil {
			log.Error("resume analysis failed", zap.Error(err))
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Resume %s: %s\n", res.Filename, res.Status)
		fmt.Fprintf(out, "Skills: %s\n", strings.Join(res.Skills, ", "))
		fmt.Fprintf(out, "Experience: %s\n", res.Experience)
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <resume.pdf|resume.docx>",
	Short: "Upload a resume to the relay and trigger the workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		msg, err := newClient().UploadResume(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			log.Error("backend upload failed", zap.Error(err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("email", "", "address the workflow reports matching jobs to")

	rootCmd.AddCommand(analyzeCmd, uploadCmd)
}
