package feed

import (
	"context"
	"sync"

	"creationity/internal/models"
	"creationity/pkg/api"
	"creationity/pkg/session"
)

// dashboardAPI is the slice of the API client the dashboard uses.
type dashboardAPI interface {
	MyStats(ctx context.Context) (*models.UserStats, error)
	MyContent(ctx context.Context, opts api.ListOptions) (*api.ListPage, error)
	MyLiked(ctx context.Context, opts api.ListOptions) (*api.ListPage, error)
}

// dashboardSession is the slice of the auth store the dashboard uses.
// Profile edits go through the store so the cached user stays current.
type dashboardSession interface {
	IsAuthenticated() bool
	CurrentUser() *models.User
	UpdateProfile(ctx context.Context, in api.ProfileInput) session.Result
}

// ProfileDraft is the working copy of a profile edit. Cancel discards it;
// the signed-in user's stored values are untouched until a submit succeeds.
type ProfileDraft struct {
	Username string
	Bio      string
	Avatar   string
}

// Dashboard is the view-model for the signed-in user's own screen: posting
// counters, recent posts, liked posts, and the profile editor. The three
// sections load concurrently and fail independently, so a broken stats
// query still leaves the content lists usable.
type Dashboard struct {
	client  dashboardAPI
	session dashboardSession
	nav     Navigator

	mu        sync.Mutex
	stats     *models.UserStats
	recent    []models.ContentItem
	liked     []models.ContentItem
	statsErr  string
	recentErr string
	likedErr  string
	loading   bool

	editing bool
	draft   ProfileDraft
}

// NewDashboard builds the dashboard view-model.
func NewDashboard(client dashboardAPI, sess dashboardSession, nav Navigator) *Dashboard {
	return &Dashboard{client: client, session: sess, nav: nav}
}

// Stats returns the loaded counters, nil before the first successful load.
func (d *Dashboard) Stats() *models.UserStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Recent returns the user's most recent posts.
func (d *Dashboard) Recent() []models.ContentItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recent
}

// Liked returns the posts the user has liked.
func (d *Dashboard) Liked() []models.ContentItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.liked
}

// SectionErrors returns the per-section failure messages from the last load,
// empty strings for sections that loaded.
func (d *Dashboard) SectionErrors() (stats, recent, liked string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statsErr, d.recentErr, d.likedErr
}

// Loading reports whether a load is in flight.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Load fetches the three dashboard sections concurrently. Unauthenticated
// users are sent to the login screen and nothing is fetched. Each section
// records its own error; one failing does not blank the others.
func (d *Dashboard) Load(ctx context.Context) {
	if !d.session.IsAuthenticated() {
		d.nav.NavigateToLogin()
		return
	}

	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		stats, err := d.client.MyStats(ctx)
		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			d.statsErr = messageFor(err)
			return
		}
		d.statsErr = ""
		d.stats = stats
	}()

	go func() {
		defer wg.Done()
		page, err := d.client.MyContent(ctx, api.ListOptions{Limit: recentLimit})
		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			d.recentErr = messageFor(err)
			return
		}
		d.recentErr = ""
		d.recent = page.Content
	}()

	go func() {
		defer wg.Done()
		page, err := d.client.MyLiked(ctx, api.ListOptions{Limit: recentLimit})
		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			d.likedErr = messageFor(err)
			return
		}
		d.likedErr = ""
		d.liked = page.Content
	}()

	wg.Wait()

	d.mu.Lock()
	d.loading = false
	d.mu.Unlock()
}

const recentLimit = 5

// Editing reports whether the profile editor is open.
func (d *Dashboard) Editing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editing
}

// ProfileDraft returns a copy of the editor's working state.
func (d *Dashboard) ProfileDraft() ProfileDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// StartEditProfile opens the editor seeded from the signed-in user.
func (d *Dashboard) StartEditProfile() {
	user := d.session.CurrentUser()
	if user == nil {
		d.nav.NavigateToLogin()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = true
	d.draft = ProfileDraft{Username: user.Username, Bio: user.Bio, Avatar: user.Avatar}
}

// UpdateProfileDraft replaces the editor's working fields.
func (d *Dashboard) UpdateProfileDraft(draft ProfileDraft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.editing {
		return
	}
	d.draft = draft
}

// CancelEditProfile closes the editor, discarding the working copy.
func (d *Dashboard) CancelEditProfile() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = false
	d.draft = ProfileDraft{}
}

// SubmitProfile saves the draft through the auth store. On success the
// editor closes; on failure it stays open with the draft intact so the
// user can correct and retry.
func (d *Dashboard) SubmitProfile(ctx context.Context) Result {
	d.mu.Lock()
	if !d.editing {
		d.mu.Unlock()
		return Result{Message: "Nothing to save"}
	}
	draft := d.draft
	d.mu.Unlock()

	res := d.session.UpdateProfile(ctx, api.ProfileInput{
		Username: draft.Username,
		Bio:      draft.Bio,
		Avatar:   draft.Avatar,
	})
	if !res.OK {
		return Result{Message: res.Message}
	}

	d.mu.Lock()
	d.editing = false
	d.draft = ProfileDraft{}
	d.mu.Unlock()
	return Result{OK: true}
}
