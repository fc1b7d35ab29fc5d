package core

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"fmeca/pkg/schema"
)

// CLISession manages an interactive copilot session over one study.
type CLISession struct {
	Orchestrator *Orchestrator
	Study        *schema.Study
}

// NewCLISession creates a session around an orchestrator and the study it
// edits.
func NewCLISession(orch *Orchestrator, study *schema.Study) *CLISession {
	return &CLISession{
		Orchestrator: orch,
		Study:        study,
	}
}

// Run executes the interactive loop. Plain input goes to the copilot;
// slash commands act on the dataset directly.
func (s *CLISession) Run(ctx context.Context) error {
	fmt.Printf("💬 Copilot session on %q (%d records). Type /help for commands.\n",
		s.Study.Name, s.Orchestrator.Engine().Len())

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil // EOF ends the session
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := s.runCommand(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
			}
			if done {
				return nil
			}
			continue
		}

		if err := s.runTurn(ctx, reader, line); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
		}
	}
}

// runTurn sends one message to the copilot, shows the commentary, and walks
// the returned proposals one at a time for confirmation.
func (s *CLISession) runTurn(ctx context.Context, reader *bufio.Reader, message string) error {
	fmt.Println("🤖 Analyzing...")

	out, err := s.Orchestrator.RunCopilot(ctx, s.Study.ContextText, message)
	if err != nil {
		return err
	}

	if out.Commentary != "" {
		fmt.Printf("\n%s\n", out.Commentary)
	}
	if len(out.Proposals) == 0 {
		return nil
	}

	applied := 0
	for i := range out.Proposals {
		p := &out.Proposals[i]
		fmt.Printf("\n%s", describeProposal(p))
		fmt.Print("Apply? [y/N]: ")
		response, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Println("   skipped")
			continue
		}
		if s.Orchestrator.Engine().Apply(*p) {
			applied++
			fmt.Println("   applied")
		} else {
			fmt.Println("   no matching record, nothing changed")
		}
	}

	if applied > 0 {
		s.autosave()
	}
	return nil
}

func (s *CLISession) runCommand(ctx context.Context, line string) (done bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		fmt.Println("  /undo            revert the last change")
		fmt.Println("  /save            persist the study")
		fmt.Println("  /sheets [id...]  generate inspection sheets (all records if no IDs)")
		fmt.Println("  /intel [id...]   generate component intel (all records if no IDs)")
		fmt.Println("  /list            show the current records")
		fmt.Println("  /quit            end the session")

	case "/undo":
		if s.Orchestrator.Engine().Undo() {
			fmt.Println("↩️  Reverted.")
		} else {
			fmt.Println("Nothing to undo.")
		}

	case "/save":
		if err := s.Orchestrator.Save(s.Study); err != nil {
			return false, err
		}
		fmt.Printf("💾 Saved %q (%d records).\n", s.Study.Name, len(s.Study.Items))

	case "/sheets":
		ids := s.targetIDs(fields[1:])
		fmt.Printf("📋 Generating inspection sheets for %d records...\n", len(ids))
		s.Orchestrator.GenerateSheets(ctx, ids)
		s.autosave()

	case "/intel":
		ids := s.targetIDs(fields[1:])
		fmt.Printf("🔍 Generating component intel for %d records...\n", len(ids))
		s.Orchestrator.GenerateIntel(ctx, ids)
		s.autosave()

	case "/list":
		for _, rec := range s.Orchestrator.Engine().Records() {
			marker := " "
			if rec.IsNew {
				marker = "*"
			}
			fmt.Printf("  %s [%s] %s | %s | RPN %d\n",
				marker, rec.ID, rec.Component, rec.FailureMode, rec.RPN)
		}

	case "/quit", "/exit":
		s.autosave()
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}

// targetIDs expands an argument list to all record IDs when empty.
func (s *CLISession) targetIDs(args []string) []string {
	if len(args) > 0 {
		return args
	}
	records := s.Orchestrator.Engine().Records()
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	return ids
}

// autosave persists the study after accepted changes. Skipped while a
// chunked batch is in flight; the batch's final merge triggers its own save.
func (s *CLISession) autosave() {
	if s.Orchestrator.BatchInFlight() {
		return
	}
	if err := s.Orchestrator.Save(s.Study); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Autosave failed: %v\n", err)
	}
}

// describeProposal formats a proposal for the confirmation prompt.
func describeProposal(p *schema.Proposal) string {
	var b strings.Builder
	switch p.Type {
	case schema.ProposalAdd:
		fmt.Fprintf(&b, "  [+] ADD %s\n", patchSummary(p.Item))
	case schema.ProposalUpdate:
		fmt.Fprintf(&b, "  [*] UPDATE %s\n", patchSummary(p.Item))
	case schema.ProposalDelete:
		id := ""
		if p.Item != nil {
			id = p.Item.ID
		}
		fmt.Fprintf(&b, "  [-] DELETE %s\n", id)
	}
	if p.Reason != "" {
		fmt.Fprintf(&b, "      Reason: %s\n", truncate(p.Reason, 100))
	}
	return b.String()
}

func patchSummary(item *schema.RecordPatch) string {
	if item == nil {
		return "(empty)"
	}
	parts := []string{}
	if item.ID != "" {
		parts = append(parts, item.ID)
	}
	if item.Component != nil {
		parts = append(parts, *item.Component)
	}
	if item.FailureMode != nil {
		parts = append(parts, *item.FailureMode)
	}
	if len(parts) == 0 {
		return "(unnamed)"
	}
	return strings.Join(parts, " | ")
}

// truncate shortens a string to max length for display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
