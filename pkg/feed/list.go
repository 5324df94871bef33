package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"creationity/internal/models"
	"creationity/pkg/api"
)

// Navigator is the navigation seam for screens to push the user elsewhere,
// typically to the login screen when an action requires an account.
type Navigator interface {
	NavigateToLogin()
}

// Session is the slice of the auth store the feed needs.
type Session interface {
	IsAuthenticated() bool
	CurrentUser() *models.User
}

// contentAPI is the slice of the API client the list uses.
type contentAPI interface {
	ListContent(ctx context.Context, opts api.ListOptions) (*api.ListPage, error)
	CreateContent(ctx context.Context, in api.ContentInput) (*models.ContentItem, error)
	UpdateContent(ctx context.Context, id uint, in api.ContentInput) (*models.ContentItem, error)
	DeleteContent(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, id uint) (*models.ContentItem, error)
}

// DraftState tracks where the composer form is in its lifecycle.
type DraftState int

const (
	DraftClosed DraftState = iota
	DraftCreating
	DraftEditing
)

// Draft is the composer form's working copy. While editing, ItemID names the
// item being edited and the fields start from the item's current values.
type Draft struct {
	State    DraftState
	ItemID   uint
	Title    string
	Content  string
	Category string
	Tags     []string
}

// List is the view-model for one content type's browse screen. It owns the
// loaded page, the active category filter, the composer draft, and the
// two-step delete flow. All methods are safe for concurrent use.
//
// Every mutation reloads the current page from the server rather than
// patching the local slice, so counters and ordering always reflect the
// server's view.
type List struct {
	client     contentAPI
	session    Session
	nav        Navigator
	descriptor TypeDescriptor

	mu         sync.Mutex
	generation uint64
	items      []models.ContentItem
	page       int
	totalPages int
	total      int64
	category   string
	loading    bool
	loadErr    string

	draft         Draft
	pendingDelete uint
}

// NewList builds the view-model for one content type.
func NewList(client contentAPI, session Session, nav Navigator, contentType string) (*List, error) {
	d, ok := DescriptorFor(contentType)
	if !ok {
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}
	return &List{
		client:     client,
		session:    session,
		nav:        nav,
		descriptor: d,
		page:       1,
	}, nil
}

// Descriptor returns the screen's type descriptor.
func (l *List) Descriptor() TypeDescriptor { return l.descriptor }

// Items returns the currently loaded page of items.
func (l *List) Items() []models.ContentItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// Page returns the current page number.
func (l *List) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// TotalPages returns the page count from the last successful load.
func (l *List) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

// Total returns the total item count from the last successful load.
func (l *List) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Category returns the active category filter, empty for all.
func (l *List) Category() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.category
}

// Loading reports whether a load is in flight.
func (l *List) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the user-facing message from the last failed load, empty when
// the last load succeeded.
func (l *List) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadErr
}

// Load fetches the current page with the current filter.
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	page := l.page
	l.mu.Unlock()
	return l.loadPage(ctx, page)
}

// SetPage switches to the given page and reloads.
func (l *List) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	return l.loadPage(ctx, page)
}

// SetCategory switches the category filter, resets to page one, and reloads.
// An empty category clears the filter.
func (l *List) SetCategory(ctx context.Context, category string) error {
	l.mu.Lock()
	l.category = category
	l.mu.Unlock()
	return l.loadPage(ctx, 1)
}

// loadPage fetches one page. A generation counter taken before the request
// detects loads that were superseded while in flight; stale responses are
// discarded so a slow earlier request can never overwrite a newer one.
func (l *List) loadPage(ctx context.Context, page int) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.loading = true
	category := l.category
	l.mu.Unlock()

	result, err := l.client.ListContent(ctx, api.ListOptions{
		Type:     l.descriptor.Type,
		Category: category,
		Page:     page,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		return nil
	}
	l.loading = false
	if err != nil {
		l.loadErr = messageFor(err)
		return err
	}
	l.loadErr = ""
	l.items = result.Content
	l.page = result.Page
	l.totalPages = result.TotalPages
	l.total = result.Total
	return nil
}

// CanModify reports whether the signed-in user authored the item.
func (l *List) CanModify(item models.ContentItem) bool {
	user := l.session.CurrentUser()
	return user != nil && item.Author.ID == user.ID
}

// HasLiked reports whether the signed-in user has liked the item.
func (l *List) HasLiked(item models.ContentItem) bool {
	user := l.session.CurrentUser()
	if user == nil {
		return false
	}
	for _, id := range item.Likes {
		if id == user.ID {
			return true
		}
	}
	return false
}

// ToggleLike flips the user's like on an item. Unauthenticated users are
// sent to the login screen and no request is made. On success the page is
// reloaded so the server's tally is what the screen shows.
func (l *List) ToggleLike(ctx context.Context, id uint) error {
	if !l.session.IsAuthenticated() {
		l.nav.NavigateToLogin()
		return nil
	}
	if _, err := l.client.ToggleLike(ctx, id); err != nil {
		return err
	}
	return l.Load(ctx)
}

// Draft returns a copy of the composer's working state.
func (l *List) Draft() Draft {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draft
}

// StartCreate opens the composer with an empty draft. Unauthenticated users
// are sent to the login screen instead.
func (l *List) StartCreate() {
	if !l.session.IsAuthenticated() {
		l.nav.NavigateToLogin()
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = Draft{State: DraftCreating}
}

// StartEdit opens the composer seeded from an existing item. Only the
// author can edit; anyone else is a no-op.
func (l *List) StartEdit(item models.ContentItem) {
	if !l.CanModify(item) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = Draft{
		State:    DraftEditing,
		ItemID:   item.ID,
		Title:    item.Title,
		Content:  item.Content,
		Category: item.Category,
		Tags:     append([]string(nil), item.Tags...),
	}
}

// UpdateDraft replaces the draft's form fields, keeping its state and target.
func (l *List) UpdateDraft(title, content, category string, tags []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.draft.State == DraftClosed {
		return
	}
	l.draft.Title = title
	l.draft.Content = content
	l.draft.Category = category
	l.draft.Tags = tags
}

// CancelDraft closes the composer, discarding the working copy.
func (l *List) CancelDraft() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = Draft{}
}

// SubmitDraft validates the draft locally and then creates or updates the
// item. Validation failures are returned without any request being made.
// On success the composer closes and the page is reloaded.
func (l *List) SubmitDraft(ctx context.Context) Result {
	l.mu.Lock()
	draft := l.draft
	l.mu.Unlock()

	if draft.State == DraftClosed {
		return Result{Message: "Nothing to submit"}
	}
	if strings.TrimSpace(draft.Title) == "" {
		return Result{Message: "Title is required"}
	}
	if strings.TrimSpace(draft.Content) == "" {
		return Result{Message: "Content is required"}
	}

	in := api.ContentInput{
		Title:    draft.Title,
		Content:  draft.Content,
		Category: draft.Category,
		Tags:     draft.Tags,
	}

	var err error
	if draft.State == DraftEditing {
		_, err = l.client.UpdateContent(ctx, draft.ItemID, in)
	} else {
		in.Type = l.descriptor.Type
		_, err = l.client.CreateContent(ctx, in)
	}
	if err != nil {
		return Result{Message: messageFor(err)}
	}

	l.mu.Lock()
	l.draft = Draft{}
	l.mu.Unlock()
	if err := l.Load(ctx); err != nil {
		return Result{OK: true, Message: messageFor(err)}
	}
	return Result{OK: true}
}

// PendingDelete returns the id awaiting confirmation, zero when none.
func (l *List) PendingDelete() uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete
}

// RequestDelete arms the delete confirmation for an item the user authored.
// Nothing is deleted until ConfirmDelete.
func (l *List) RequestDelete(item models.ContentItem) {
	if !l.CanModify(item) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = item.ID
}

// CancelDelete disarms the pending confirmation.
func (l *List) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = 0
}

// ConfirmDelete deletes the armed item and reloads the page. Without a prior
// RequestDelete it is a no-op.
func (l *List) ConfirmDelete(ctx context.Context) Result {
	l.mu.Lock()
	id := l.pendingDelete
	l.pendingDelete = 0
	l.mu.Unlock()

	if id == 0 {
		return Result{Message: "No deletion pending"}
	}
	if err := l.client.DeleteContent(ctx, id); err != nil {
		return Result{Message: messageFor(err)}
	}
	if err := l.Load(ctx); err != nil {
		return Result{OK: true, Message: messageFor(err)}
	}
	return Result{OK: true}
}
