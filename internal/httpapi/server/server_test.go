package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/artvault/artvault/internal/httpapi/handlers"
	"github.com/artvault/artvault/internal/httpapi/server"
	"github.com/artvault/artvault/pkg/apperrors"
	"github.com/artvault/artvault/pkg/cache/inmemory"
	"github.com/artvault/artvault/pkg/cachesync"
	"github.com/artvault/artvault/pkg/config"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/records/mocks"
	"github.com/artvault/artvault/pkg/store"
)

const (
	testAPIKey   = "secret-key"
	testUser     = "admin"
	testPassword = "hunter2"
)

type fakeSync struct {
	calls   int
	reports []*cachesync.Report
	err     error
}

func (f *fakeSync) Run(_ context.Context) ([]*cachesync.Report, error) {
	f.calls++
	return f.reports, f.err
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppInfo{Name: "artvault", Version: "test", Environment: "test"},
		APIServer: config.APIServerConfig{
			CORS: config.CORSConfig{
				AllowedOrigins: []string{"https://gallery.example"},
				AllowedMethods: []string{"GET", "PUT", "POST", "DELETE"},
				AllowedHeaders: []string{"Content-Type", "X-API-Key"},
			},
			Auth: config.AuthConfig{
				Enabled:    true,
				APIKeys:    []string{testAPIKey},
				BasicUsers: []config.BasicUser{{Username: testUser, Password: testPassword}},
			},
		},
	}
}

func withAPIKey(r *http.Request) {
	r.Header.Set("X-API-Key", testAPIKey)
}

func withAdmin(r *http.Request) {
	withAPIKey(r)
	r.SetBasicAuth(testUser, testPassword)
}

func send(h http.Handler, method, path string, body interface{}, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		Expect(err).NotTo(HaveOccurred())
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder, out interface{}) {
	ExpectWithOffset(1, json.Unmarshal(rec.Body.Bytes(), out)).To(Succeed())
}

var _ = Describe("API server", func() {
	var (
		cfg        *config.AppConfig
		cacheStore *store.Store
		recordMock *mocks.MockStore
		syncer     *fakeSync
		router     http.Handler
	)

	BeforeEach(func() {
		cfg = testConfig()

		c, err := inmemory.NewCache(&inmemory.Config{})
		Expect(err).NotTo(HaveOccurred())
		cacheStore = store.New(c)

		ctrl := gomock.NewController(GinkgoT())
		recordMock = mocks.NewMockStore(ctrl)
		syncer = &fakeSync{}

		h := handlers.NewHandlers(cfg, cacheStore, recordMock, syncer)
		router = server.NewAPIServer(cfg, h, nil).Handler()
	})

	Describe("ambient routes", func() {
		It("serves status without credentials", func() {
			rec := send(router, http.MethodGet, "/status", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var body map[string]string
			decode(rec, &body)
			Expect(body).To(HaveKeyWithValue("service", "artvault"))
			Expect(body).To(HaveKeyWithValue("status", "running"))
		})

		It("rejects API calls without a key", func() {
			rec := send(router, http.MethodGet, "/api/v1/artwork-cache", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects API calls with a wrong key", func() {
			rec := send(router, http.MethodGet, "/api/v1/artwork-cache", nil, func(r *http.Request) {
				r.Header.Set("X-API-Key", "nope")
			})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("echoes a valid request id and generates one otherwise", func() {
			id := uuid.NewString()
			rec := send(router, http.MethodGet, "/status", nil, func(r *http.Request) {
				r.Header.Set("X-Request-ID", id)
			})
			Expect(rec.Header().Get("X-Request-ID")).To(Equal(id))

			rec = send(router, http.MethodGet, "/status", nil, func(r *http.Request) {
				r.Header.Set("X-Request-ID", "not-a-uuid")
			})
			generated := rec.Header().Get("X-Request-ID")
			Expect(generated).NotTo(Equal("not-a-uuid"))
			_, err := uuid.Parse(generated)
			Expect(err).NotTo(HaveOccurred())
		})

		It("answers CORS preflight for allowed origins", func() {
			rec := send(router, http.MethodOptions, "/api/v1/artists", nil, func(r *http.Request) {
				r.Header.Set("Origin", "https://gallery.example")
			})
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://gallery.example"))
		})
	})

	Describe("artwork cache", func() {
		detail := map[string]interface{}{
			"title":     "Dawn",
			"medium":    "oil",
			"dimension": "40x60",
			"price":     12.5,
		}

		It("writes, reads, lists and deletes an artwork detail", func() {
			rec := send(router, http.MethodPut, "/api/v1/artwork-cache/a1", detail, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = send(router, http.MethodGet, "/api/v1/artwork-cache/a1", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var got store.ArtworkDetail
			decode(rec, &got)
			Expect(got).To(Equal(store.ArtworkDetail{
				ID: "a1", Title: "Dawn", Medium: "oil", Dimension: "40x60", Price: "12.5",
			}))

			rec = send(router, http.MethodGet, "/api/v1/artwork-cache", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var keys handlers.ArtworkKeysResponse
			decode(rec, &keys)
			Expect(keys.Keys).To(ConsistOf("artworkDetails:a1"))

			rec = send(router, http.MethodGet, "/api/v1/artwork-cache?details=true", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var all []store.ArtworkDetail
			decode(rec, &all)
			Expect(all).To(HaveLen(1))

			rec = send(router, http.MethodDelete, "/api/v1/artwork-cache/a1", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusNoContent))

			rec = send(router, http.MethodGet, "/api/v1/artwork-cache/a1", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("rejects incomplete details", func() {
			rec := send(router, http.MethodPut, "/api/v1/artwork-cache/a1", map[string]interface{}{
				"title": "Dawn",
				"price": 1,
			}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var body handlers.ErrorResponse
			decode(rec, &body)
			Expect(body.Error).To(ContainSubstring("medium"))
		})

		It("rejects malformed JSON", func() {
			rec := send(router, http.MethodPut, "/api/v1/artwork-cache/a1", `{"title":`, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("strips markup from cached fields", func() {
			rec := send(router, http.MethodPut, "/api/v1/artwork-cache/a2", map[string]interface{}{
				"title":     "<b>Dusk</b>",
				"medium":    "ink",
				"dimension": "10x10",
				"price":     "3",
			}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))

			got, err := cacheStore.Artwork.Get(context.Background(), "a2")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Dusk"))
			Expect(got.Price).To(Equal("3"))
		})
	})

	Describe("productive artists", func() {
		const rankingPath = "/api/v1/productive-artists/ar1/Ada"

		It("replaces and reads a ranking in the given order", func() {
			rec := send(router, http.MethodPut, rankingPath, handlers.RankingRequest{
				ArtworkIDs: []string{"w3", "w1", "w2"},
			}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = send(router, http.MethodGet, rankingPath, nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var ranking handlers.RankingResponse
			decode(rec, &ranking)
			Expect(ranking.ArtworkIDs).To(Equal([]string{"w3", "w1", "w2"}))
			Expect(ranking.Policy).To(Equal(store.PolicyPosition))

			rec = send(router, http.MethodGet, "/api/v1/productive-artists", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var artists []handlers.ProductiveArtist
			decode(rec, &artists)
			Expect(artists).To(ConsistOf(handlers.ProductiveArtist{
				Key:        "productiveArtistArtworks:ar1:Ada",
				ArtistID:   "ar1",
				ArtistName: "Ada",
			}))
		})

		It("returns an empty ranking for an unknown artist", func() {
			rec := send(router, http.MethodGet, "/api/v1/productive-artists/nobody/None", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var ranking handlers.RankingResponse
			decode(rec, &ranking)
			Expect(ranking.ArtworkIDs).To(BeEmpty())
		})

		It("rejects duplicate artwork ids", func() {
			rec := send(router, http.MethodPut, rankingPath, handlers.RankingRequest{
				ArtworkIDs: []string{"w1", "w1"},
			}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var body handlers.ErrorResponse
			decode(rec, &body)
			Expect(body.Error).To(ContainSubstring("more than once"))
		})

		It("rejects an empty ranking and leaves the existing one", func() {
			send(router, http.MethodPut, rankingPath, handlers.RankingRequest{ArtworkIDs: []string{"w1"}}, withAPIKey)

			rec := send(router, http.MethodPut, rankingPath, `{"artworkIds":[]}`, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			rec = send(router, http.MethodGet, rankingPath, nil, withAPIKey)
			var ranking handlers.RankingResponse
			decode(rec, &ranking)
			Expect(ranking.ArtworkIDs).To(Equal([]string{"w1"}))
			Expect(ranking.Policy).To(Equal(store.PolicyPosition))
		})

		It("deletes a ranking", func() {
			send(router, http.MethodPut, rankingPath, handlers.RankingRequest{ArtworkIDs: []string{"w1"}}, withAPIKey)

			rec := send(router, http.MethodDelete, rankingPath, nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusNoContent))

			ids, err := cacheStore.Ranking.GetArtworks(context.Background(), "ar1", "Ada")
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})
	})

	Describe("durable records", func() {
		It("lists artists", func() {
			recordMock.EXPECT().ListArtists(gomock.Any()).Return([]records.Artist{
				{ID: "ar1", Name: "Ada", Artworks: []records.ID{"w1"}},
			}, nil)

			rec := send(router, http.MethodGet, "/api/v1/artists", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var artists []records.Artist
			decode(rec, &artists)
			Expect(artists).To(HaveLen(1))
			Expect(artists[0].Name).To(Equal("Ada"))
		})

		DescribeTable("maps store errors onto status codes",
			func(storeErr error, want int) {
				recordMock.EXPECT().GetArtist(gomock.Any(), "ar1").Return(nil, storeErr)

				rec := send(router, http.MethodGet, "/api/v1/artists/ar1", nil, withAPIKey)
				Expect(rec.Code).To(Equal(want))
			},
			Entry("invalid identifier", apperrors.InvalidIdentifier("artist", "ar1"), http.StatusBadRequest),
			Entry("not found", apperrors.NotFound("artist", "ar1"), http.StatusNotFound),
			Entry("unavailable", fmt.Errorf("ping: %w", apperrors.ErrStoreUnavailable), http.StatusServiceUnavailable),
			Entry("unexpected", errors.New("boom"), http.StatusInternalServerError),
		)

		It("hides internal error text", func() {
			recordMock.EXPECT().ListArtworks(gomock.Any()).Return(nil, errors.New("socket closed"))

			rec := send(router, http.MethodGet, "/api/v1/artworks", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			var body handlers.ErrorResponse
			decode(rec, &body)
			Expect(body.Error).To(Equal("failed to list artworks"))
		})

		It("creates an artist from sanitized input", func() {
			recordMock.EXPECT().
				CreateArtist(gomock.Any(), records.ArtistInput{Name: "Ada"}).
				Return(&records.Artist{ID: "ar1", Name: "Ada", Artworks: []records.ID{}}, nil)

			rec := send(router, http.MethodPost, "/api/v1/artists", map[string]string{"name": "<i>Ada</i>"}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("requires an artist name", func() {
			rec := send(router, http.MethodPost, "/api/v1/artists", map[string]string{"name": "  "}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("creates an artwork with its creation date", func() {
			recordMock.EXPECT().CreateArtwork(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, in records.ArtworkInput) (*records.Artwork, error) {
					Expect(in.Title).To(Equal("Dawn"))
					Expect(in.ArtistID).To(Equal("ar1"))
					Expect(in.Price).To(Equal(10.0))
					Expect(in.CreationDate.Equal(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))).To(BeTrue())
					return &records.Artwork{ID: "w1", Title: in.Title, ArtistID: records.ID(in.ArtistID)}, nil
				})

			rec := send(router, http.MethodPost, "/api/v1/artworks", map[string]interface{}{
				"title":        "Dawn",
				"price":        10,
				"creationDate": "2020-01-02T00:00:00Z",
				"artistId":     "ar1",
			}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("rejects a negative price", func() {
			rec := send(router, http.MethodPost, "/api/v1/artworks", map[string]interface{}{
				"title": "Dawn",
				"price": -1,
			}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("updates only the given artwork fields", func() {
			recordMock.EXPECT().UpdateArtwork(gomock.Any(), "w1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, upd records.ArtworkUpdate) (*records.Artwork, error) {
					Expect(upd.Title).NotTo(BeNil())
					Expect(*upd.Title).To(Equal("Dusk"))
					Expect(upd.Medium).To(BeNil())
					Expect(upd.Price).To(BeNil())
					return &records.Artwork{ID: "w1", Title: "Dusk"}, nil
				})

			rec := send(router, http.MethodPut, "/api/v1/artworks/w1", map[string]string{"title": "Dusk"}, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("deletes artworks and artists", func() {
			recordMock.EXPECT().DeleteArtwork(gomock.Any(), "w1").Return(nil)
			recordMock.EXPECT().DeleteArtist(gomock.Any(), "ar1").Return(apperrors.NotFound("artist", "ar1"))

			Expect(send(router, http.MethodDelete, "/api/v1/artworks/w1", nil, withAPIKey).Code).To(Equal(http.StatusNoContent))
			Expect(send(router, http.MethodDelete, "/api/v1/artists/ar1", nil, withAPIKey).Code).To(Equal(http.StatusNotFound))
		})

		It("lists the artworks of an artist", func() {
			recordMock.EXPECT().ListArtworksByArtist(gomock.Any(), "ar1").Return([]records.Artwork{{ID: "w1"}, {ID: "w2"}}, nil)

			rec := send(router, http.MethodGet, "/api/v1/artists/ar1/artworks", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var artworks []records.Artwork
			decode(rec, &artworks)
			Expect(artworks).To(HaveLen(2))
		})
	})

	Describe("admin sync", func() {
		It("requires basic credentials", func() {
			rec := send(router, http.MethodPost, "/api/v1/admin/sync", nil, withAPIKey)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Header().Get("WWW-Authenticate")).To(ContainSubstring("artvault"))
			Expect(syncer.calls).To(BeZero())
		})

		It("rejects wrong credentials", func() {
			rec := send(router, http.MethodPost, "/api/v1/admin/sync", nil, func(r *http.Request) {
				withAPIKey(r)
				r.SetBasicAuth(testUser, "wrong")
			})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns the reports of a successful run", func() {
			syncer.reports = []*cachesync.Report{
				{Procedure: cachesync.ProcedureArtworkDetails, Mode: cachesync.ModeAllOrNothing, Synced: 5},
				{Procedure: cachesync.ProcedureProductiveArtists, Mode: cachesync.ModeAllOrNothing, Synced: 1, Skipped: 1},
			}

			rec := send(router, http.MethodPost, "/api/v1/admin/sync", nil, withAdmin)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(syncer.calls).To(Equal(1))

			var body handlers.SyncResponse
			decode(rec, &body)
			Expect(body.Error).To(BeEmpty())
			Expect(body.Reports).To(HaveLen(2))
			Expect(body.Reports[1].Skipped).To(Equal(1))
		})

		It("reports a failed run with the completed reports", func() {
			syncer.reports = []*cachesync.Report{{Procedure: cachesync.ProcedureArtworkDetails, Failed: 1}}
			syncer.err = apperrors.NewSyncError(cachesync.ProcedureArtworkDetails, "w1", errors.New("cache down"))

			rec := send(router, http.MethodPost, "/api/v1/admin/sync", nil, withAdmin)
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))

			var body handlers.SyncResponse
			decode(rec, &body)
			Expect(body.Error).To(ContainSubstring("w1"))
			Expect(body.Reports).To(HaveLen(1))
		})
	})
})
