package coda

// PageTree is an arena of page snapshots keyed by id. Parent and child links
// are ids into the arena, so the tree holds no pointer cycles and can be built
// from any set of pages without network access.
type PageTree struct {
	pages    map[string]*Page
	order    []string
	children map[string][]string
}

// NewPageTree builds a tree from a set of pages.
func NewPageTree(pages []Page) *PageTree {
	t := &PageTree{
		pages:    make(map[string]*Page, len(pages)),
		children: make(map[string][]string, len(pages)),
	}

	for i := range pages {
		t.Add(pages[i])
	}

	return t
}

// Add stores a copy of page. A later page with the same id replaces the earlier one.
func (t *PageTree) Add(page Page) {
	if page.ID == "" {
		return
	}

	if _, exists := t.pages[page.ID]; !exists {
		t.order = append(t.order, page.ID)
	}

	p := page
	t.pages[page.ID] = &p

	ids := make([]string, 0, len(page.Children))
	for _, child := range page.Children {
		if child.ID != "" {
			ids = append(ids, child.ID)
		}
	}

	t.children[page.ID] = ids
}

// Len returns the number of loaded pages.
func (t *PageTree) Len() int {
	return len(t.order)
}

// Get returns the page with the given id.
func (t *PageTree) Get(id string) (*Page, bool) {
	p, ok := t.pages[id]

	return p, ok
}

// ParentID returns the id of the page's parent, or "" for a top-level page.
func (t *PageTree) ParentID(id string) string {
	p, ok := t.pages[id]
	if !ok || p.Parent == nil {
		return ""
	}

	return p.Parent.ID
}

// Parent returns the loaded parent of a page.
func (t *PageTree) Parent(id string) (*Page, bool) {
	parentID := t.ParentID(id)
	if parentID == "" {
		return nil, false
	}

	return t.Get(parentID)
}

// ChildIDs returns the ids of a page's children in server order, followed by
// loaded pages that name it as parent but are missing from its child list.
// Ids of children that were never loaded are included.
func (t *PageTree) ChildIDs(id string) []string {
	ids := append([]string(nil), t.children[id]...)

	seen := make(map[string]bool, len(ids))
	for _, childID := range ids {
		seen[childID] = true
	}

	for _, candidate := range t.order {
		if !seen[candidate] && t.ParentID(candidate) == id {
			ids = append(ids, candidate)
			seen[candidate] = true
		}
	}

	return ids
}

// Children returns the loaded children of a page.
func (t *PageTree) Children(id string) []*Page {
	var out []*Page

	for _, childID := range t.ChildIDs(id) {
		if p, ok := t.pages[childID]; ok {
			out = append(out, p)
		}
	}

	return out
}

// Roots returns, in insertion order, the pages whose parent is absent or not loaded.
func (t *PageTree) Roots() []*Page {
	var out []*Page

	for _, id := range t.order {
		parentID := t.ParentID(id)
		if _, loaded := t.pages[parentID]; parentID == "" || !loaded {
			out = append(out, t.pages[id])
		}
	}

	return out
}

// Walk visits every reachable loaded page depth-first, starting at the roots.
// Returning an error from fn stops the walk and returns that error.
func (t *PageTree) Walk(fn func(page *Page, depth int) error) error {
	visited := make(map[string]bool, len(t.order))

	var visit func(p *Page, depth int) error

	visit = func(p *Page, depth int) error {
		if visited[p.ID] {
			return nil
		}

		visited[p.ID] = true

		if err := fn(p, depth); err != nil {
			return err
		}

		for _, child := range t.Children(p.ID) {
			if err := visit(child, depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	for _, root := range t.Roots() {
		if err := visit(root, 0); err != nil {
			return err
		}
	}

	return nil
}
