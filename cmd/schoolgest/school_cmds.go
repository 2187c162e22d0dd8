package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jrsteele09/schoolgest-client/communications"
	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/storage"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid %s %q", name, arg)
	}
	return id, nil
}

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (ADMIN)",
	}

	var filter users.Filter
	var role, active string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Role = users.NormalizeRole(users.Role(role))
			if active != "" {
				v, err := strconv.ParseBool(active)
				if err != nil {
					return errors.Errorf("invalid --active %q", active)
				}
				filter.Active = &v
			}
			out, err := c.app.Users.Search(cmd.Context(), filter)
			if err != nil {
				return c.fail(cmd.Context(), err, "users list")
			}
			return printJSON(cmd, out)
		},
	}
	list.Flags().StringVar(&filter.Query, "query", "", "text to search for")
	list.Flags().StringVar(&role, "role", "", "ADMIN, ENSEIGNANT or ETUDIANT")
	list.Flags().StringVar(&active, "active", "", "true or false")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			out, err := c.app.Users.Get(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "users get")
			}
			return printJSON(cmd, out)
		},
	}

	status := &cobra.Command{
		Use:   "status <id> <true|false>",
		Short: "Activate or deactivate an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			v, err := strconv.ParseBool(args[1])
			if err != nil {
				return errors.Errorf("invalid status %q", args[1])
			}
			out, err := c.app.Users.UpdateStatus(cmd.Context(), id, v)
			if err != nil {
				return c.fail(cmd.Context(), err, "users status")
			}
			return printJSON(cmd, out)
		},
	}

	roleCmd := &cobra.Command{
		Use:   "role <id> <role>",
		Short: "Change the role of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			out, err := c.app.Users.UpdateRole(cmd.Context(), id, users.Role(args[1]))
			if err != nil {
				return c.fail(cmd.Context(), err, "users role")
			}
			return printJSON(cmd, out)
		},
	}

	var exportPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Download every user as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blob, err := c.app.Users.ExportCSV(cmd.Context())
			if err != nil {
				return c.fail(cmd.Context(), err, "users export")
			}
			path := exportPath
			if path == "" {
				path = blob.Filename
			}
			if path == "" {
				path = "users.csv"
			}
			if err := writeBlob(path, blob.Data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d octets écrits dans %s\n", len(blob.Data), path)
			return nil
		},
	}
	export.Flags().StringVarP(&exportPath, "out", "o", "", "output file")

	cmd.AddCommand(list, get, status, roleCmd, export)
	return cmd
}

func (c *cli) classesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Browse classes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.app.Academic.Classes(cmd.Context())
			if err != nil {
				return c.fail(cmd.Context(), err, "classes list")
			}
			return printJSON(cmd, out)
		},
	}, &cobra.Command{
		Use:   "students <class-id>",
		Short: "List the students of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "class id")
			if err != nil {
				return err
			}
			out, err := c.app.Academic.ClassStudents(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "classes students")
			}
			return printJSON(cmd, out)
		},
	})
	return cmd
}

func (c *cli) enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <student-id> <class-id>",
		Short: "Enroll a student in a class",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, class, err := parseEnrollment(args)
			if err != nil {
				return err
			}
			if err := c.app.Academic.Enroll(cmd.Context(), student, class); err != nil {
				return c.fail(cmd.Context(), err, "enroll")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Étudiant inscrit.")
			return nil
		},
	}
}

func (c *cli) unenrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unenroll <student-id> <class-id>",
		Short: "Remove a student from a class",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, class, err := parseEnrollment(args)
			if err != nil {
				return err
			}
			if err := c.app.Academic.Unenroll(cmd.Context(), student, class); err != nil {
				return c.fail(cmd.Context(), err, "unenroll")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Étudiant désinscrit.")
			return nil
		},
	}
}

func parseEnrollment(args []string) (int64, int64, error) {
	student, err := parseID(args[0], "student id")
	if err != nil {
		return 0, 0, err
	}
	class, err := parseID(args[1], "class id")
	if err != nil {
		return 0, 0, err
	}
	return student, class, nil
}

func (c *cli) attendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance of a student",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "history <student-id>",
		Short: "List attendance records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			out, err := c.app.Attendance.StudentHistory(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "attendance history")
			}
			return printJSON(cmd, out)
		},
	}, &cobra.Command{
		Use:   "stats <student-id>",
		Short: "Show attendance statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			out, err := c.app.Attendance.StudentStats(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "attendance stats")
			}
			return printJSON(cmd, out)
		},
	})
	return cmd
}

func (c *cli) gradesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grades <student-id>",
		Short: "List a student's grades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			out, err := c.app.Evaluations.StudentGrades(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "student grades")
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) scheduleCmd() *cobra.Command {
	var from, to string
	var teacher bool
	cmd := &cobra.Command{
		Use:   "schedule <class-id>",
		Short: "List the courses of a class, or of a teacher with --teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "id")
			if err != nil {
				return err
			}
			lookup := c.app.Schedule.ByClass
			if teacher {
				lookup = c.app.Schedule.ByTeacher
			}
			out, err := lookup(cmd.Context(), id, from, to)
			if err != nil {
				return c.fail(cmd.Context(), err, "schedule")
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().BoolVar(&teacher, "teacher", false, "treat the id as a teacher id")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

type inbox struct {
	Unread   int64                    `json:"unread"`
	Messages []communications.Message `json:"messages"`
}

func (c *cli) inboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List the messages of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := c.app.Session()
			if !session.Authenticated {
				return c.fail(cmd.Context(), apperrors.ErrNotAuthenticated, "inbox")
			}
			var out inbox
			var err error
			if out.Unread, err = c.app.Communications.UnreadCount(cmd.Context(), session.User.ID); err != nil {
				return c.fail(cmd.Context(), err, "inbox")
			}
			if out.Messages, err = c.app.Communications.Inbox(cmd.Context(), session.User.ID); err != nil {
				return c.fail(cmd.Context(), err, "inbox")
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) bulletinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulletins",
		Short: "Report cards",
	}
	list := &cobra.Command{
		Use:   "list <student-id>",
		Short: "List the report cards of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "student id")
			if err != nil {
				return err
			}
			out, err := c.app.Bulletins.ByStudent(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "bulletins list")
			}
			return printJSON(cmd, out)
		},
	}

	var out string
	pdf := &cobra.Command{
		Use:   "pdf <report-card-id>",
		Short: "Download a report card as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "report card id")
			if err != nil {
				return err
			}
			blob, err := c.app.Bulletins.DownloadPDF(cmd.Context(), id)
			if err != nil {
				return c.fail(cmd.Context(), err, "bulletins pdf")
			}
			path := out
			if path == "" {
				path = blob.Filename
			}
			if path == "" {
				path = fmt.Sprintf("bulletin-%d.pdf", id)
			}
			if err := writeBlob(path, blob.Data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bulletin enregistré dans %s\n", path)
			return nil
		},
	}
	pdf.Flags().StringVarP(&out, "out", "o", "", "output file")

	cmd.AddCommand(list, pdf)
	return cmd
}

func (c *cli) uploadCmd() *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			name := filepath.Base(args[0])
			url, err := c.app.Storage.Upload(cmd.Context(), folder, name, mime.TypeByExtension(filepath.Ext(name)), f)
			if err != nil {
				return c.fail(cmd.Context(), err, "upload")
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", storage.DefaultFolder, "destination folder")
	return cmd
}

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator dashboard",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.app.Admin.DashboardStats(cmd.Context())
			if err != nil {
				return c.fail(cmd.Context(), err, "admin stats")
			}
			return printJSON(cmd, out)
		},
	}, &cobra.Command{
		Use:   "status",
		Short: "Show backend system status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.app.Admin.SystemStatus(cmd.Context())
			if err != nil {
				return c.fail(cmd.Context(), err, "admin status")
			}
			return printJSON(cmd, out)
		},
	})
	return cmd
}
