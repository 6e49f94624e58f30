package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ownerswap/pkg/ui/styles"
)

//go:embed topics/*.md
var topicFiles embed.FS

// topicManager serves help topics from markdown files.
type topicManager struct {
	files fs.FS
	// topics maps a topic name to its file path
	topics map[string]string
}

func newTopicManager(files fs.FS, dir string) (*topicManager, error) {
	tm := &topicManager{files: files, topics: make(map[string]string)}
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		tm.topics[strings.TrimSuffix(e.Name(), ".md")] = path.Join(dir, e.Name())
	}
	return tm, nil
}

// lookup resolves a topic name. Flag-style names (--dry-run) map to
// option-<name> topics.
func (tm *topicManager) lookup(name string) (string, bool) {
	name = strings.TrimLeft(name, "-")
	if p, ok := tm.topics[name]; ok {
		return p, true
	}
	p, ok := tm.topics["option-"+name]
	return p, ok
}

func (tm *topicManager) names() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		if strings.HasPrefix(name, "option-") {
			name = "--" + strings.TrimPrefix(name, "option-")
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (tm *topicManager) render(cmd *cobra.Command, name string) error {
	p, _ := tm.lookup(name)
	content, err := fs.ReadFile(tm.files, p)
	if err != nil {
		return err
	}
	rendered, err := styles.NewRenderer(cmd.OutOrStdout()).Markdown(string(content))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// initTopics replaces the default help command with one that also serves the
// embedded help topics.
func initTopics(rootCmd *cobra.Command) {
	tm, err := newTopicManager(topicFiles, "topics")
	if err != nil {
		return
	}

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		// topics may look like flags (help --dry-run)
		DisableFlagParsing: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				return rootCmd.Help()
			}
			if args[0] == "topics" {
				fmt.Fprintln(w, MsgTopicsHeader)
				for _, name := range tm.names() {
					fmt.Fprintf(w, MsgTopicItem, name)
				}
				fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", rootCmd.Name())
				return nil
			}
			if _, ok := tm.lookup(args[0]); ok {
				return tm.render(cmd, args[0])
			}

			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				fmt.Fprintf(w, MsgUnknownHelpTopic, strings.Join(args, " "))
				return rootCmd.Usage()
			}
			return target.Help()
		},
	}

	rootCmd.SetHelpCommand(helpCmd)
}
