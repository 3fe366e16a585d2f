package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/render"
	"github.com/noah-isme/elores-client/internal/schedule"
	"github.com/noah-isme/elores-client/internal/service"
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "List and manage meetings",
}

var meetingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meetings of a teacher",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		teacherID, _ := cmd.Flags().GetInt("teacher")
		meetings, err := application.Schedule.GetMeetings(cmd.Context(), teacherID)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(meetings))
		for _, m := range meetings {
			when := ""
			if !m.ScheduledAt.IsZero() {
				when = m.ScheduledAt.Format("2006-01-02 15:04")
			}
			slot := ""
			if m.Slot().Valid() {
				slot = m.Slot().String()
			}
			rows = append(rows, []string{
				strconv.Itoa(m.ID), when, slot, m.Title, m.Room,
				schedule.MeetingTier(m).String(),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"ID", "When", "Slot", "Title", "Room", "Status"}, rows))
		return nil
	},
}

var meetingsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Request a meeting at a date or at the next occurrence of a grid slot",
	Example: `  elores meetings create --student 12 --title "Tutoría" --at "2024-03-20 09:00:00"
  elores meetings create --student 12 --title "Tutoría" --day miercoles --period 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		studentID, _ := flags.GetInt("student")
		title, _ := flags.GetString("title")
		subject, _ := flags.GetString("subject")
		room, _ := flags.GetString("room")
		at, _ := flags.GetString("at")
		rawDay, _ := flags.GetString("day")
		period, _ := flags.GetInt("period")

		if (at == "") == (rawDay == "") {
			return fmt.Errorf("pass either --at or --day with --period")
		}
		if _, err := login(cmd.Context()); err != nil {
			return err
		}

		var (
			created bool
			when    time.Time
			err     error
		)
		if rawDay != "" {
			day, ok := models.ParseWeekday(rawDay)
			if !ok {
				return fmt.Errorf("unknown school day %q", rawDay)
			}
			created, when, err = application.Meetings.CreateInSlot(cmd.Context(), service.CreateMeetingInSlotRequest{
				StudentID: studentID, Title: title, Subject: subject, Room: room, Day: day, Period: period,
			})
		} else {
			parsed, ok := protocol.ParseLocalDateTime(at)
			if !ok {
				return fmt.Errorf("invalid --at %q, expected yyyy-MM-dd HH:mm:ss", at)
			}
			when = parsed
			created, err = application.Meetings.Create(cmd.Context(), service.CreateMeetingRequest{
				StudentID: studentID, Title: title, Subject: subject, Room: room, ScheduledAt: parsed,
			})
		}
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("server did not create the meeting")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "meeting requested for %s\n", when.Format("Monday 2006-01-02 15:04"))
		return nil
	},
}

var meetingsStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Change the status of a meeting",
	Long:  "Status accepts pending, accepted, denied or cancelled, in English, Spanish or Basque.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid meeting id %q", args[0])
		}
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		ok, err := application.Meetings.UpdateStatus(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("server did not update meeting %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "meeting %d updated\n", id)
		return nil
	},
}

var meetingsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid meeting id %q", args[0])
		}
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		ok, err := application.Meetings.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("server did not delete meeting %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "meeting %d deleted\n", id)
		return nil
	},
}

func init() {
	meetingsListCmd.Flags().Int("teacher", 0, "teacher id, defaults to the logged-in user")

	f := meetingsCreateCmd.Flags()
	f.Int("student", 0, "student id")
	f.String("title", "", "meeting title")
	f.String("subject", "", "subject or notes")
	f.String("room", "", "room")
	f.String("at", "", "date and time, yyyy-MM-dd HH:mm:ss")
	f.String("day", "", "grid day, used with --period")
	f.Int("period", 0, "grid period 1-6")
	_ = meetingsCreateCmd.MarkFlagRequired("student")
	_ = meetingsCreateCmd.MarkFlagRequired("title")

	meetingsCmd.AddCommand(meetingsListCmd, meetingsCreateCmd, meetingsStatusCmd, meetingsDeleteCmd)
}
