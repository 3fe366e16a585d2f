package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/elores-client/internal/render"
	"github.com/noah-isme/elores-client/internal/service"
)

var teachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "List teachers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		teachers, err := application.Schedule.ListTeachers(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(teachers))
		for _, t := range teachers {
			rows = append(rows, []string{fmt.Sprint(t.ID), t.FullName(), t.Email})
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"ID", "Name", "Email"}, rows))
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the weekly grid with meetings overlaid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		teacherID, _ := cmd.Flags().GetInt("teacher")
		width, _ := cmd.Flags().GetInt("width")

		grid, err := application.Schedule.ComposeWeek(cmd.Context(), teacherID)
		if err != nil {
			return err
		}

		r := render.NewGridRendererWidth(width)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, r.Render(grid))
		if legend, _ := cmd.Flags().GetBool("legend"); legend {
			fmt.Fprintln(out, r.Legend())
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the weekly grid to EXPORTS_DIR as CSV or PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawFormat, _ := cmd.Flags().GetString("format")
		format, err := service.ParseExportFormat(rawFormat)
		if err != nil {
			return err
		}
		user, err := login(cmd.Context())
		if err != nil {
			return err
		}
		teacherID, _ := cmd.Flags().GetInt("teacher")

		grid, err := application.Schedule.ComposeWeek(cmd.Context(), teacherID)
		if err != nil {
			return err
		}

		title := user.FullName()
		if teacherID > 0 && teacherID != user.ID {
			title = fmt.Sprintf("teacher %d", teacherID)
		}
		path, err := application.Exports.Save(grid, format, "schedule "+title)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	scheduleCmd.Flags().Int("teacher", 0, "teacher id, defaults to the logged-in user")
	scheduleCmd.Flags().Int("width", 16, "column width")
	scheduleCmd.Flags().Bool("legend", false, "print the colour legend")

	exportCmd.Flags().Int("teacher", 0, "teacher id, defaults to the logged-in user")
	exportCmd.Flags().StringP("format", "f", string(service.ExportFormatCSV), "csv or pdf")
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List saved exports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
			removed, err := application.Storage.CleanupOlderThan(prune)
			if err != nil {
				return err
			}
			for _, name := range removed {
				fmt.Fprintln(out, "removed", name)
			}
		}
		names, err := application.Storage.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(out, application.Storage.Path(name))
		}
		return nil
	},
}

func init() {
	exportsCmd.Flags().Duration("prune", 0, "first remove exports older than this")
}
