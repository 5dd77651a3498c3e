package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"inspection-report/internal/session"
)

var (
	authName string
	authTeam string
	authPIN  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a user and sign in",
	Long: `Registers a new user with a unique name and a 4-digit PIN. On success
the session is saved and later reports are filed under this user.

Example:
  inspect register --name 김철수 --team 시설팀 --pin 1234`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		s, err := client.Register(cmd.Context(), authName, authTeam, authPIN)
		if err != nil {
			return err
		}
		return saveSession(cmd, s, "가입")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with name and PIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		s, err := client.Login(cmd.Context(), authName, authPIN)
		if err != nil {
			return err
		}
		return saveSession(cmd, s, "로그인")
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := sessionStore()
		if err != nil {
			return err
		}
		if err := fs.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "로그아웃되었습니다")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		if s == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "로그인하지 않았습니다")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.AuthorLine(), s.UserID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVar(&authName, "name", "", "User name")
		c.Flags().StringVar(&authPIN, "pin", "", "4-digit PIN")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("pin")
	}
	registerCmd.Flags().StringVar(&authTeam, "team", "", "Team name")
}

func saveSession(cmd *cobra.Command, s *session.Session, verb string) error {
	fs, err := sessionStore()
	if err != nil {
		return err
	}
	if err := fs.Save(s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s 완료: %s\n", verb, s.AuthorLine())
	return nil
}
