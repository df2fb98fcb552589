package casperfake

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
)

type collection struct {
	name    string
	dim     uint32
	maxSize uint32
	mutable bool
	vectors map[uint32][]float32
	index   *indexBody
}

type matrix struct {
	name   string
	dim    uint32
	values []float32
}

type pq struct {
	name      string
	dim       uint32
	codebooks []string
}

type hnswBody struct {
	Metric         string  `json:"metric"`
	Quantization   string  `json:"quantization"`
	M              uint32  `json:"m"`
	M0             uint32  `json:"m0"`
	EfConstruction uint32  `json:"ef_construction"`
	PQName         *string `json:"pq_name,omitempty"`
}

type indexBody struct {
	HNSW          *hnswBody `json:"hnsw,omitempty"`
	Normalization *bool     `json:"normalization,omitempty"`
}

type collectionInfo struct {
	Name      string   `json:"name"`
	Dimension uint32   `json:"dimension"`
	Mutable   bool     `json:"mutable"`
	HasIndex  bool     `json:"has_index"`
	MaxSize   uint32   `json:"max_size"`
	Size      uint32   `json:"size"`
	Index     *infoIdx `json:"index,omitempty"`
}

type infoIdx struct {
	HNSW          *hnswBody `json:"hnsw,omitempty"`
	Normalization bool      `json:"normalization"`
}

type vectorBody struct {
	ID     *uint32   `json:"id,omitempty"`
	Vector []float32 `json:"vector"`
}

type batchBody struct {
	Insert []struct {
		ID     uint32    `json:"id"`
		Vector []float32 `json:"vector"`
	} `json:"insert"`
	Delete []uint32 `json:"delete"`
}

type itemResult struct {
	ID    uint32 `json:"id"`
	Op    string `json:"op"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type hit struct {
	ID    uint32  `json:"id"`
	Score float32 `json:"score"`
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.record)

	r.HandleFunc("/collections", s.listCollections).Methods(http.MethodGet)
	r.HandleFunc("/collection/{name}", s.getCollection).Methods(http.MethodGet)
	r.HandleFunc("/collection/{name}", s.createCollection).Methods(http.MethodPost)
	r.HandleFunc("/collection/{name}", s.deleteCollection).Methods(http.MethodDelete)
	r.HandleFunc("/collection/{name}/insert", s.insertVector).Methods(http.MethodPost)
	r.HandleFunc("/collection/{name}/delete", s.deleteVector).Methods(http.MethodDelete)
	r.HandleFunc("/collection/{name}/vector/{id}", s.getVector).Methods(http.MethodGet)
	r.HandleFunc("/collection/{name}/search", s.search).Methods(http.MethodPost)
	r.HandleFunc("/collection/{name}/update", s.batchUpdate).Methods(http.MethodPost)
	r.HandleFunc("/collection/{name}/index", s.createIndex).Methods(http.MethodPost)
	r.HandleFunc("/collection/{name}/index", s.deleteIndex).Methods(http.MethodDelete)

	r.HandleFunc("/matrix/list", s.listMatrices).Methods(http.MethodGet)
	r.HandleFunc("/matrix/{name}", s.getMatrix).Methods(http.MethodGet)
	r.HandleFunc("/matrix/{name}", s.deleteMatrix).Methods(http.MethodDelete)

	r.HandleFunc("/pq/list", s.listPQs).Methods(http.MethodGet)
	r.HandleFunc("/pq/{name}", s.createPQ).Methods(http.MethodPost)
	r.HandleFunc("/pq/{name}", s.getPQ).Methods(http.MethodGet)
	r.HandleFunc("/pq/{name}", s.deletePQ).Methods(http.MethodDelete)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pathVar(r *http.Request, key string) string {
	v := mux.Vars(r)[key]
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func queryUint(r *http.Request, key string) (uint32, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s %q", key, raw)
	}
	return uint32(v), true, nil
}

// lookup returns the named collection; callers hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*collection, bool) {
	name := pathVar(r, "name")
	c, ok := s.collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("collection %s not found", name))
	}
	return c, ok
}

func (c *collection) info() collectionInfo {
	info := collectionInfo{
		Name:      c.name,
		Dimension: c.dim,
		Mutable:   c.mutable,
		HasIndex:  c.index != nil,
		MaxSize:   c.maxSize,
		Size:      uint32(len(c.vectors)),
	}
	if c.index != nil {
		info.Index = &infoIdx{HNSW: c.index.HNSW, Normalization: c.index.Normalization != nil && *c.index.Normalization}
	}
	return info
}

func (s *Server) listCollections(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]collectionInfo, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, c.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, map[string]interface{}{"collections": out})
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, c.info())
	}
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Dim     uint32 `json:"dim"`
		MaxSize uint32 `json:"max_size"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	dim, ok, err := queryUint(r, "dim")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		dim = body.Dim
	}
	maxSize, ok, err := queryUint(r, "max_size")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		maxSize = body.MaxSize
	}
	if dim == 0 || maxSize == 0 {
		writeError(w, http.StatusBadRequest, "dim and max_size must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := pathVar(r, "name")
	if _, exists := s.collections[name]; exists {
		writeError(w, http.StatusConflict, fmt.Sprintf("collection %s already exists", name))
		return
	}
	s.collections[name] = &collection{
		name:    name,
		dim:     dim,
		maxSize: maxSize,
		mutable: true,
		vectors: map[uint32][]float32{},
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.lookup(w, r); ok {
		delete(s.collections, c.name)
		w.WriteHeader(http.StatusOK)
	}
}

// insert applies one insert; callers hold s.mu.
func (c *collection) insert(id uint32, vec []float32) (int, string) {
	if !c.mutable {
		return http.StatusMethodNotAllowed, "collection is immutable"
	}
	if uint32(len(vec)) != c.dim {
		return http.StatusBadRequest, fmt.Sprintf("vector dimension mismatch: expected %d, got %d", c.dim, len(vec))
	}
	if _, exists := c.vectors[id]; !exists && uint32(len(c.vectors)) >= c.maxSize {
		return http.StatusBadRequest, "collection is full"
	}
	c.vectors[id] = append([]float32(nil), vec...)
	return http.StatusOK, ""
}

func (c *collection) remove(id uint32) (int, string) {
	if !c.mutable {
		return http.StatusMethodNotAllowed, "collection is immutable"
	}
	if _, ok := c.vectors[id]; !ok {
		return http.StatusNotFound, fmt.Sprintf("vector %d not found", id)
	}
	delete(c.vectors, id)
	return http.StatusOK, ""
}

func (s *Server) insertVector(w http.ResponseWriter, r *http.Request) {
	var body vectorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	id, ok, err := queryUint(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		if body.ID == nil {
			writeError(w, http.StatusBadRequest, "missing id")
			return
		}
		id = *body.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	if status, msg := c.insert(id, body.Vector); status != http.StatusOK {
		writeError(w, status, msg)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteVector(w http.ResponseWriter, r *http.Request) {
	id, ok, err := queryUint(r, "id")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	if status, msg := c.remove(id); status != http.StatusOK {
		writeError(w, status, msg)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getVector(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(pathVar(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	vec, ok := c.vectors[uint32(id)]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("vector %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "vector": vec})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var body vectorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	limit, ok, err := queryUint(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	if uint32(len(body.Vector)) != c.dim {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("query dimension mismatch: expected %d, got %d", c.dim, len(body.Vector)))
		return
	}

	metric := "inner-product"
	if c.index != nil && c.index.HNSW != nil {
		metric = c.index.HNSW.Metric
	}

	hits := make([]hit, 0, len(c.vectors))
	for id, v := range c.vectors {
		hits = append(hits, hit{ID: id, Score: score(metric, body.Vector, v)})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if uint32(len(hits)) > limit {
		hits = hits[:limit]
	}

	if s.searchJSON {
		writeJSON(w, http.StatusOK, hits)
		return
	}

	buf := make([]byte, 4+8*len(hits))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(hits)))
	for i, h := range hits {
		off := 4 + 8*i
		binary.LittleEndian.PutUint32(buf[off:], h.ID)
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(h.Score))
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf)
}

// score is a similarity: larger is closer for every metric.
func score(metric string, a, b []float32) float32 {
	var dot, na, nb, dist float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
		dist += (x - y) * (x - y)
	}
	switch metric {
	case "euclidean":
		return float32(-dist)
	case "cosine":
		if na == 0 || nb == 0 {
			return 0
		}
		return float32(dot / math.Sqrt(na*nb))
	default:
		return float32(dot)
	}
}

func (s *Server) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var body batchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	if !c.mutable {
		writeError(w, http.StatusMethodNotAllowed, "collection is immutable")
		return
	}

	if !s.batchItemResults {
		for _, ins := range body.Insert {
			if uint32(len(ins.Vector)) != c.dim {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("vector dimension mismatch for id %d", ins.ID))
				return
			}
		}
		for _, ins := range body.Insert {
			c.insert(ins.ID, ins.Vector)
		}
		for _, id := range body.Delete {
			delete(c.vectors, id)
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	results := make([]itemResult, 0, len(body.Insert)+len(body.Delete))
	for _, ins := range body.Insert {
		status, msg := c.insert(ins.ID, ins.Vector)
		results = append(results, itemResult{ID: ins.ID, Op: "insert", OK: status == http.StatusOK, Error: msg})
	}
	for _, id := range body.Delete {
		status, msg := c.remove(id)
		results = append(results, itemResult{ID: id, Op: "delete", OK: status == http.StatusOK, Error: msg})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) createIndex(w http.ResponseWriter, r *http.Request) {
	var body indexBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.HNSW == nil {
		writeError(w, http.StatusBadRequest, "invalid index body")
		return
	}
	if raw := r.URL.Query().Get("has_normalization"); raw != "" && body.Normalization == nil {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid has_normalization")
			return
		}
		body.Normalization = &v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	if c.index != nil {
		writeError(w, http.StatusConflict, "index already exists")
		return
	}
	if body.HNSW.PQName != nil {
		if _, ok := s.pqs[*body.HNSW.PQName]; !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("pq %s does not exist", *body.HNSW.PQName))
			return
		}
	}
	c.index = &body
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookup(w, r)
	if !found {
		return
	}
	if c.index == nil {
		writeError(w, http.StatusNotFound, "index not found")
		return
	}
	c.index = nil
	w.WriteHeader(http.StatusOK)
}

func (m *matrix) info() map[string]interface{} {
	n := 0
	if m.dim > 0 {
		n = len(m.values) / int(m.dim)
	}
	return map[string]interface{}{"name": m.name, "dim": m.dim, "len": n, "enabled": true}
}

func (s *Server) listMatrices(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.matrices))
	for name := range s.matrices {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		out = append(out, s.matrices[name].info())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getMatrix(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := pathVar(r, "name")
	m, ok := s.matrices[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("matrix %s not found", name))
		return
	}
	writeJSON(w, http.StatusOK, m.info())
}

func (s *Server) deleteMatrix(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := pathVar(r, "name")
	if _, ok := s.matrices[name]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("matrix %s not found", name))
		return
	}
	delete(s.matrices, name)
	w.WriteHeader(http.StatusOK)
}

func (p *pq) info() map[string]interface{} {
	return map[string]interface{}{"name": p.name, "dim": p.dim, "codebooks": p.codebooks, "enabled": true}
}

func (s *Server) listPQs(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.pqs))
	for name := range s.pqs {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		out = append(out, s.pqs[name].info())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createPQ(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Dim       uint32   `json:"dim"`
		Codebooks []string `json:"codebooks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := pathVar(r, "name")
	if _, exists := s.pqs[name]; exists {
		writeError(w, http.StatusConflict, fmt.Sprintf("pq %s already exists", name))
		return
	}
	for _, cb := range body.Codebooks {
		if _, ok := s.matrices[cb]; !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("matrix %s not found", cb))
			return
		}
	}
	s.pqs[name] = &pq{name: name, dim: body.Dim, codebooks: body.Codebooks}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getPQ(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := pathVar(r, "name")
	p, ok := s.pqs[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("pq %s not found", name))
		return
	}
	writeJSON(w, http.StatusOK, p.info())
}

func (s *Server) deletePQ(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := pathVar(r, "name")
	if _, ok := s.pqs[name]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("pq %s not found", name))
		return
	}
	delete(s.pqs, name)
	w.WriteHeader(http.StatusOK)
}
