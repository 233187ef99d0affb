package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"merchstore/entities"
	"merchstore/models"
)

type fakeCatalogRepo struct {
	products map[string]entities.Product
}

func newFakeCatalogRepo(prods ...entities.Product) *fakeCatalogRepo {
	r := &fakeCatalogRepo{products: map[string]entities.Product{}}
	for _, p := range prods {
		r.products[p.Id] = p
	}
	return r
}

func (r *fakeCatalogRepo) GetAll() ([]entities.Product, error) {
	out := []entities.Product{}
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetByCategory(categoryId string) ([]entities.Product, error) {
	out := []entities.Product{}
	for _, p := range r.products {
		if p.CategoryId == categoryId {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetFeatured() ([]entities.Product, error) {
	out := []entities.Product{}
	for _, p := range r.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetById(id string) (entities.Product, bool, error) {
	p, ok := r.products[id]
	return p, ok, nil
}

func (r *fakeCatalogRepo) Create(p entities.Product) error {
	r.products[p.Id] = p
	return nil
}

func (r *fakeCatalogRepo) Update(p entities.Product) (entities.Product, error) {
	if _, ok := r.products[p.Id]; !ok {
		return entities.Product{}, models.ErrNotFoundError
	}
	r.products[p.Id] = p
	return p, nil
}

func (r *fakeCatalogRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeCatalogRepo) Seed(prods []entities.Product) error {
	for _, p := range prods {
		if _, ok := r.products[p.Id]; !ok {
			r.products[p.Id] = p
		}
	}
	return nil
}

type fakeCartRepo struct {
	m        sync.Mutex
	lines    map[string][]entities.CartLine
	discount map[string]bool
	err      error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		lines:    map[string][]entities.CartLine{},
		discount: map[string]bool{},
	}
}

func (r *fakeCartRepo) GetCart(sid string) (entities.Cart, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return entities.Cart{}, r.err
	}
	cart := entities.Cart{
		Lines:            append([]entities.CartLine{}, r.lines[sid]...),
		UseDiscountToken: r.discount[sid],
	}
	return cart, nil
}

func (r *fakeCartRepo) SetLines(sid string, lines []entities.CartLine) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	r.lines[sid] = append([]entities.CartLine{}, lines...)
	return nil
}

func (r *fakeCartRepo) SetDiscount(sid string, use bool) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	r.discount[sid] = use
	return nil
}

type fakeSession struct {
	username string
	role     string
}

type fakeSessionRepo struct {
	sessions map[string]fakeSession
	nextId   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]fakeSession{}}
}

func (r *fakeSessionRepo) CreateSession(username, role string) (string, error) {
	r.nextId++
	id := fmt.Sprintf("sess-%d", r.nextId)
	r.sessions[id] = fakeSession{username: username, role: role}
	return id, nil
}

func (r *fakeSessionRepo) CheckSession(id string) (bool, error) {
	_, ok := r.sessions[id]
	return ok, nil
}

func (r *fakeSessionRepo) DeleteSession(id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) RefreshSession(id string, _ time.Duration) error {
	if _, ok := r.sessions[id]; !ok {
		return models.ErrNotFoundError
	}
	return nil
}

func (r *fakeSessionRepo) GetSessionInfo(id string) (string, string, bool, error) {
	s, ok := r.sessions[id]
	if !ok {
		return "", "", false, nil
	}
	return s.username, s.role, true, nil
}

// scriptedProvider plays the wallet capability: canned results or errors per
// method, recording every request it sees.
type rpcCall struct {
	method string
	params []any
}

type scriptedProvider struct {
	m       sync.Mutex
	calls   []rpcCall
	results map[string]json.RawMessage
	errs    map[string]error
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{
		results: map[string]json.RawMessage{},
		errs:    map[string]error{},
	}
}

func (f *scriptedProvider) Request(_ context.Context, method string, params ...any) (json.RawMessage, error) {
	f.m.Lock()
	defer f.m.Unlock()
	f.calls = append(f.calls, rpcCall{method: method, params: params})
	if err, ok := f.errs[method]; ok {
		return nil, err
	}
	if res, ok := f.results[method]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("unexpected method %s", method)
}

func (f *scriptedProvider) callCount(method string) int {
	f.m.Lock()
	defer f.m.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func (f *scriptedProvider) lastCall(method string) (rpcCall, bool) {
	f.m.Lock()
	defer f.m.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].method == method {
			return f.calls[i], true
		}
	}
	return rpcCall{}, false
}
