package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/render"
	"github.com/noah-isme/elores-client/internal/service"
)

var studentsCmd = &cobra.Command{
	Use:   "students [id]",
	Short: "List your students or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var studentID int
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid student id %q", args[0])
			}
			studentID = id
		}
		if _, err := login(cmd.Context()); err != nil {
			return err
		}

		var students []models.Student
		if studentID > 0 {
			student, err := application.Students.Get(cmd.Context(), studentID)
			if err != nil {
				return err
			}
			students = append(students, *student)
		} else {
			list, err := application.Students.List(cmd.Context())
			if err != nil {
				return err
			}
			students = list
		}

		rows := make([][]string, 0, len(students))
		for _, s := range students {
			rows = append(rows, []string{strconv.Itoa(s.ID), s.FullName(), s.Email, s.Phone1, s.Year + " " + s.Cycle})
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"ID", "Name", "Email", "Phone", "Course"}, rows))
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		profile, err := application.Profiles.Get(cmd.Context(), 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"Field", "Value"}, [][]string{
			{"Name", profile.FullName()},
			{"Email", profile.Email},
			{"Username", profile.Username},
			{"DNI", profile.DNI},
			{"Address", profile.Address},
			{"Phone", profile.Phone1},
			{"Phone 2", profile.Phone2},
			{"Role", profile.TypeName},
		}))
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your contact details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var req service.UpdateProfileRequest
		req.Email, _ = flags.GetString("new-email")
		req.Address, _ = flags.GetString("address")
		req.Phone1, _ = flags.GetString("phone1")
		req.Phone2, _ = flags.GetString("phone2")

		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		if err := application.Profiles.Update(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "profile updated")
		return nil
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password [new-password]",
	Short: "Change your password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		if err := application.Profiles.ChangePassword(cmd.Context(), service.ChangePasswordRequest{NewPassword: args[0]}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "password changed")
		return nil
	},
}

func init() {
	f := profileUpdateCmd.Flags()
	f.String("new-email", "", "new email")
	f.String("address", "", "postal address")
	f.String("phone1", "", "phone")
	f.String("phone2", "", "second phone")

	profileCmd.AddCommand(profileUpdateCmd, profilePasswordCmd)
}
