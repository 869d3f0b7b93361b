package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spacearchive/internal/detail"
	"spacearchive/internal/media"
	"spacearchive/internal/provider"
	"spacearchive/internal/session"
	"spacearchive/internal/ui"
)

// Search flags
var (
	flagType   string
	flagFrom   string
	flagTo     string
	flagCenter string
	flagPages  int
	flagPlain  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the library",
	Args:  cobra.ArbitraryArgs,
	RunE:  searchRun,
}

func init() {
	addSearchFlags(searchCmd)
}

func addSearchFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagType, "type", "t", "", "Media type: image | video | audio | all")
	c.Flags().StringVar(&flagFrom, "from", "", "Start year (YYYY)")
	c.Flags().StringVar(&flagTo, "to", "", "End year (YYYY)")
	c.Flags().StringVar(&flagCenter, "center", "", "NASA center (e.g. JPL, GSFC)")
	c.Flags().IntVar(&flagPages, "pages", 1, "Number of pages to fetch in non-interactive mode")
	c.Flags().BoolVar(&flagPlain, "plain", false, "Print results instead of opening the browser")
}

// searchRun is the default command: spacearchive <query>
func searchRun(cmd *cobra.Command, args []string) error {
	params, err := searchParams(args)
	if err != nil {
		return err
	}

	client := newClient()
	p, err := newProvider(client)
	if err != nil {
		return err
	}

	sess := session.New(p, nil)
	ctx := cmd.Context()

	if interactive() {
		debugf("opening browser for %q", params.Query)
		return ui.Run(ctx, sess, func() *detail.Aggregator { return detail.New(p, nil) }, params)
	}

	if params.Query == "" {
		return fmt.Errorf("no search query provided")
	}

	debugf("searching for: %s", params.Query)
	st := sess.Search(ctx, params)
	for i := 1; i < flagPages && st.HasMore && st.Err == ""; i++ {
		debugf("loading page %d", st.Page+1)
		st = sess.LoadMore(ctx)
	}

	if st.Err != "" {
		if len(st.Items) == 0 {
			return errors.New(st.Err)
		}
		fmt.Fprintf(os.Stderr, "warning: %s\n", st.Err)
	}

	if flagJSON {
		return writeJSON(os.Stdout, st)
	}
	printItems(os.Stdout, st.Items)
	fmt.Fprintf(os.Stderr, "%d of %d results\n", len(st.Items), st.TotalHits)
	return nil
}

// searchParams validates the search flags and builds request params.
func searchParams(args []string) (provider.SearchParams, error) {
	params := provider.SearchParams{
		Query:     strings.TrimSpace(strings.Join(args, " ")),
		MediaType: strings.ToLower(flagType),
		YearStart: flagFrom,
		YearEnd:   flagTo,
		Center:    flagCenter,
	}

	switch params.MediaType {
	case "", "all", string(media.Image), string(media.Video), string(media.Audio):
	default:
		return params, fmt.Errorf("unsupported media type %q (valid: image, video, audio, all)", flagType)
	}

	for _, y := range []string{params.YearStart, params.YearEnd} {
		if y == "" {
			continue
		}
		if _, err := strconv.Atoi(y); err != nil || len(y) != 4 {
			return params, fmt.Errorf("invalid year %q (want YYYY)", y)
		}
	}
	if params.YearStart != "" && params.YearEnd != "" && params.YearStart > params.YearEnd {
		return params, fmt.Errorf("start year %s is after end year %s", params.YearStart, params.YearEnd)
	}

	if flagPages < 1 {
		return params, fmt.Errorf("--pages must be at least 1")
	}

	return params, nil
}

// interactive reports whether the browser should be used.
func interactive() bool {
	if flagJSON || flagPlain {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func printItems(w io.Writer, items []media.Item) {
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\n", it.ID, ui.FormatDisplayTitle(it))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
