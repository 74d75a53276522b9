package main

import (
	"fmt"
	"os"
	"strings"

	"blonde/internal/app"
	"blonde/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const version = "2.0.0"

var (
	successMark = color.New(color.FgHiGreen).Sprint("✓")
	failureMark = color.New(color.FgHiRed).Sprint("✗")
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configDir string
		debug     bool
	)

	newApp := func() (*app.Application, error) {
		return app.NewApplication(configDir, debug)
	}

	runTUI := func(cmd *cobra.Command, args []string) error {
		application, err := newApp()
		if err != nil {
			return err
		}
		p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
		_, err = p.Run()
		return err
	}

	root := &cobra.Command{
		Use:     "blonde",
		Short:   "Blonde - terminal chat and coding assistant",
		Long:    "Blonde is a terminal chat/coding assistant with pluggable LLM backends,\nagent personas, and persistent sessions.\n\nRun without arguments for the chat TUI.",
		Version: version,
		RunE:    runTUI,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.blonde)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	chat := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat TUI",
		RunE:  runTUI,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blonde %s\n", version)
		},
	}

	ask := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Send a one-shot prompt to the configured provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			reply, err := application.ExecuteTurn(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}

	var agentContext string
	agent := &cobra.Command{
		Use:   "agent <role> <task...>",
		Short: "Run a single agent persona (generator, reviewer, tester, refactorer, documenter)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			team, err := application.Team()
			if err != nil {
				return err
			}
			fmt.Println(team.ExecuteAgent(cmd.Context(), args[0], strings.Join(args[1:], " "), agentContext))
			return nil
		},
	}
	agent.Flags().StringVar(&agentContext, "context", "", "extra context passed to the agent")

	var collabRoles string
	var collabContext string
	collab := &cobra.Command{
		Use:   "collab <task...>",
		Short: "Run several agent personas against the same task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			team, err := application.Team()
			if err != nil {
				return err
			}
			var roles []string
			if collabRoles != "" {
				roles = strings.Split(collabRoles, ",")
			}
			results := team.Collaborate(cmd.Context(), strings.Join(args, " "), roles, collabContext)
			for _, role := range team.AgentList() {
				out, ok := results[role]
				if !ok {
					continue
				}
				fmt.Printf("── %s ──\n%s\n\n", role, out)
			}
			return nil
		},
	}
	collab.Flags().StringVar(&collabRoles, "agents", "", "comma-separated roles (default generator,reviewer,tester)")
	collab.Flags().StringVar(&collabContext, "context", "", "extra context passed to each agent")

	root.AddCommand(chat, versionCmd, ask, agent, collab,
		sessionsCommand(newApp),
		providersCommand(newApp),
		configCommand(newApp))

	return root
}

// shortID truncates a session id for display. Ids are opaque strings with no
// guaranteed length.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sessionsCommand(newApp func() (*app.Application, error)) *cobra.Command {
	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and archive saved sessions",
	}

	sessions.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all non-archived sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			listed, err := application.Sessions.ListSessions()
			if err != nil {
				return err
			}
			table := tablewriter.NewTable(os.Stdout)
			table.Header([]string{"ID", "Name", "Created", "Provider", "Model", "Turns", "Cost"})
			for _, sess := range listed {
				table.Append([]string{
					shortID(sess.SessionID),
					sess.Name,
					sess.CreatedAt,
					sess.Provider,
					sess.Model,
					fmt.Sprintf("%d", len(sess.ChatHistory)),
					fmt.Sprintf("$%.4f", sess.Cost.TotalUSD),
				})
			}
			table.Render()
			return nil
		},
	})

	sessions.AddCommand(&cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a session's chat history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			sess, err := application.Sessions.GetSession(args[0])
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Printf("%s session %s not found\n", failureMark, args[0])
				return nil
			}
			fmt.Printf("%s (%s, %s/%s)\n\n", sess.Name, sess.CreatedAt, sess.Provider, sess.Model)
			for _, msg := range sess.ChatHistory {
				fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
			}
			return nil
		},
	})

	sessions.AddCommand(&cobra.Command{
		Use:   "archive <session-id>",
		Short: "Move a session out of the default listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			ok, err := application.Sessions.ArchiveSession(args[0])
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("%s archived %s\n", successMark, args[0])
			} else {
				fmt.Printf("%s no such session: %s\n", failureMark, args[0])
			}
			return nil
		},
	})

	return sessions
}

func providersCommand(newApp func() (*app.Application, error)) *cobra.Command {
	providers := &cobra.Command{
		Use:   "providers",
		Short: "List, switch, and probe LLM providers",
	}

	providers.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the provider catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			current := application.Providers.CurrentProvider()
			table := tablewriter.NewTable(os.Stdout)
			table.Header([]string{"", "ID", "Name", "Privacy", "Cost"})
			for _, info := range app.ListProviders() {
				active := ""
				if info.ID == current {
					active = "*"
				}
				table.Append([]string{active, info.ID, info.Name, info.Privacy, info.Cost})
			}
			table.Render()
			return nil
		},
	})

	providers.AddCommand(&cobra.Command{
		Use:   "switch <provider>",
		Short: "Make a provider the configured default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			if application.Providers.SwitchProvider(args[0]) {
				fmt.Printf("%s switched to %s\n", successMark, args[0])
			} else {
				fmt.Printf("%s failed to switch to %s (still on %s)\n",
					failureMark, args[0], application.Providers.CurrentProvider())
			}
			return nil
		},
	})

	providers.AddCommand(&cobra.Command{
		Use:   "test <provider>",
		Short: "Probe a provider with a trivial prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			if application.Providers.TestProvider(cmd.Context(), args[0]) {
				fmt.Printf("%s %s is responding\n", successMark, args[0])
			} else {
				fmt.Printf("%s %s is not responding\n", failureMark, args[0])
			}
			return nil
		},
	})

	return providers
}

func configCommand(newApp func() (*app.Application, error)) *cobra.Command {
	config := &cobra.Command{
		Use:   "config",
		Short: "Read and write preferences",
	}

	config.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			fmt.Println(application.Config.Get(args[0], ""))
			return nil
		},
	})

	config.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a config value (persisted immediately)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			if err := application.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s %s = %s\n", successMark, args[0], args[1])
			return nil
		},
	})

	return config
}
