package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobmate/recruitment-service/internal/candidate"
	"jobmate/recruitment-service/internal/config"
)

var (
	listPage   int
	listLimit  int
	outputJSON bool
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Inspects stored candidates",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints one page of candidates with their job offers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		conn, closeDB, err := openDatabase(ctx, cfg, zap.NewNop())
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer closeDB()

		svc := candidate.NewService(candidate.NewStore(conn), nil, nil, nil, zap.NewNop())
		page, err := svc.List(ctx, listPage, listLimit)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}

		if outputJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}
		renderCandidates(cmd.OutOrStdout(), page)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	candidatesListCmd.Flags().IntVarP(&listPage, "page", "p", candidate.DefaultPage, "page number, starting at 1")
	candidatesListCmd.Flags().IntVarP(&listLimit, "limit", "l", candidate.DefaultLimit, "candidates per page")
	candidatesListCmd.Flags().BoolVar(&outputJSON, "json", false, "print the page as JSON")
	candidatesCmd.AddCommand(candidatesListCmd)
}

// renderCandidates writes page as a table followed by a one-line summary
// that counts the shown candidates in a final status.
func renderCandidates(w io.Writer, page *candidate.Page) {
	if len(page.Data) == 0 {
		fmt.Fprintf(w, "No candidates on page %d (total %d).\n", page.Meta.Page, page.Meta.Total)
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Email", "Name", "Status", "Experience", "Job Offers", "Created"})
	table.SetAutoWrapText(false)

	closed := 0
	for _, c := range page.Data {
		if candidate.IsFinal(c.RecruitmentStatus) {
			closed++
		}
		table.Append([]string{
			c.Email,
			c.FirstName + " " + c.LastName,
			statusLabel(c.RecruitmentStatus),
			experienceLabel(c.YearsOfExperience),
			offerTitles(c.JobOffers),
			createdLabel(c.CreatedAt),
		})
	}
	table.Render()

	fmt.Fprintf(w, "Page %d of %d (%d candidates, %d of %d shown closed)\n",
		page.Meta.Page, page.Meta.TotalPages, page.Meta.Total, closed, len(page.Data))
}

func statusLabel(s candidate.RecruitmentStatus) string {
	switch s {
	case candidate.StatusAccepted:
		return color.GreenString(string(s))
	case candidate.StatusRejected:
		return color.RedString(string(s))
	case candidate.StatusInInterviews:
		return color.YellowString(string(s))
	}
	return string(s)
}

func experienceLabel(years *int) string {
	if years == nil {
		return "-"
	}
	return strconv.Itoa(*years) + "y"
}

func offerTitles(offers []candidate.JobOffer) string {
	titles := make([]string, 0, len(offers))
	for _, o := range offers {
		titles = append(titles, o.Title)
	}
	return strings.Join(titles, ", ")
}

func createdLabel(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateTime)
}
