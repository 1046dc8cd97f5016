package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-list-keeper/internal/adapter"
	"github.com/MKhiriev/go-list-keeper/internal/render"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/atotto/clipboard"
)

const usage = `usage: go-list-client [flags] <command> [args]

commands:
  register <login> <password> [name]
  login <login> <password>
  lists
  list <list id> [search]
  recent [limit]
  rate <entry id> <rating|none>
  share <list id>
  unshare <list id>
  shared <share code>
  subscribe <list id>
  watch
  version`

var (
	errUsage    = errors.New(usage)
	errBadValue = errors.New("invalid argument")
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type commands struct {
	server    adapter.ServerAdapter
	theme     *render.Theme
	out       io.Writer
	tokenFile string
	baseURL   string
	build     models.AppInfo
}

func (c *commands) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	name, args := args[0], args[1:]

	switch name {
	case "register", "login":
		return c.authenticate(ctx, name, args)
	case "version":
		return c.version(ctx)
	}

	if err := c.loadToken(); err != nil {
		return err
	}

	switch name {
	case "lists":
		return c.lists(ctx)
	case "list":
		return c.list(ctx, args)
	case "recent":
		return c.recent(ctx, args)
	case "rate":
		return c.rate(ctx, args)
	case "share":
		return c.share(ctx, args)
	case "unshare":
		return withID(args, func(id int64) error { return c.server.UnshareList(ctx, id) })
	case "shared":
		return c.shared(ctx, args)
	case "subscribe":
		return withID(args, func(id int64) error {
			_, err := c.server.Subscribe(ctx, id)
			return err
		})
	case "watch":
		return c.watch(ctx)
	default:
		return errUsage
	}
}

func (c *commands) authenticate(ctx context.Context, name string, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	user := models.User{Login: args[0], Password: args[1]}
	if len(args) > 2 {
		user.Name = args[2]
	}

	var err error
	if name == "register" {
		_, err = c.server.Register(ctx, user)
	} else {
		_, err = c.server.Login(ctx, user)
	}
	if err != nil {
		return err
	}

	if err = os.WriteFile(c.tokenFile, []byte(c.server.Token()), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintf(c.out, "logged in as %s\n", user.Login)
	return nil
}

func (c *commands) loadToken() error {
	token, err := os.ReadFile(c.tokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: run login first", adapter.ErrNoToken)
	}
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	c.server.SetToken(strings.TrimSpace(string(token)))
	return nil
}

func (c *commands) version(ctx context.Context) error {
	fmt.Fprintf(c.out, "client: %s (%s, %s)\n", orNA(c.build.Version), orNA(c.build.BuildDate), orNA(c.build.BuildCommit))

	info, err := c.server.GetVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "server: %s (%s, %s)\n", info.Version, orNA(info.BuildDate), orNA(info.BuildCommit))
	return nil
}

func (c *commands) lists(ctx context.Context) error {
	lists, err := c.server.GetLists(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.theme.Lists(lists))
	return nil
}

func (c *commands) list(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	listID, err := parseID(args[0])
	if err != nil {
		return err
	}

	list, err := c.server.GetList(ctx, listID)
	if err != nil {
		return err
	}

	// unfiltered listings are served from the response cache
	filter := models.EntryFilter{ListID: listID}
	if len(args) > 1 {
		filter.Search = strings.Join(args[1:], " ")
		filter.OrderBy = models.EntryOrderRating
		filter.Descending = true
	}
	entries, err := c.server.GetEntries(ctx, filter)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, c.theme.Entries(list, entries))
	return nil
}

func (c *commands) recent(ctx context.Context, args []string) error {
	var limit uint64
	if len(args) > 0 {
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: limit %q", errBadValue, args[0])
		}
		limit = n
	}

	entries, err := c.server.GetRecentEntries(ctx, limit)
	if err != nil {
		return err
	}

	lists := map[int64]models.List{}
	for _, entry := range entries {
		list, ok := lists[entry.ListID]
		if !ok {
			if list, err = c.server.GetList(ctx, entry.ListID); err != nil {
				return err
			}
			lists[entry.ListID] = list
		}
		fmt.Fprintln(c.out, c.theme.EntryCard(list, entry))
	}
	return nil
}

func (c *commands) rate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	entryID, err := parseID(args[0])
	if err != nil {
		return err
	}

	update := models.EntryUpdate{ID: entryID}
	if args[1] == "none" {
		update.ClearRating = true
	} else {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: rating %q", errBadValue, args[1])
		}
		update.Rating = &value
	}

	if _, err = c.server.UpdateEntry(ctx, update); err != nil {
		return err
	}

	display, err := c.server.GetRatingDisplay(ctx, entryID)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.theme.Rating(display))
	return nil
}

func (c *commands) share(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	listID, err := parseID(args[0])
	if err != nil {
		return err
	}

	shared, err := c.server.ShareList(ctx, listID)
	if err != nil {
		return err
	}

	link := strings.TrimRight(c.baseURL, "/") + "/api/shared/" + url.PathEscape(shared.ShareCode)
	fmt.Fprintln(c.out, link)
	if err = copyToClipboard(link); err != nil {
		fmt.Fprintln(c.out, c.theme.Error(fmt.Errorf("copy to clipboard: %w", err)))
		return nil
	}
	fmt.Fprintln(c.out, "link copied to clipboard")
	return nil
}

func (c *commands) shared(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	view, err := c.server.GetSharedList(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.theme.SharedList(view))
	return nil
}

// watch prints change events until ctx is cancelled.
func (c *commands) watch(ctx context.Context) error {
	fmt.Fprintln(c.out, "watching for changes, press Ctrl+C to stop")
	return c.server.StreamEvents(ctx, func(evt models.EntityChanged) {
		fmt.Fprintf(c.out, "%s %s %s #%d\n", evt.OccurredAt.Format("15:04:05"), evt.EntityType, evt.Action, evt.ID)
	})
}

func withID(args []string, fn func(id int64) error) error {
	if len(args) == 0 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return fn(id)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", errBadValue, s)
	}
	return id, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
