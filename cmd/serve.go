package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/melody"
	"github.com/5alad/loveemu-lab/mml"
	"github.com/5alad/loveemu-lab/model"
	"github.com/5alad/loveemu-lab/search"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the search over HTTP",
	Long:  `Serves POST /search and POST /parse on $MELO_ADDR (default :8080).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), constants.GetListenAddr())
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, int64(constants.GetMaxBodyBytes()))
	err := json.NewDecoder(body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body is larger than %v bytes", tooLarge.Limit))
		return false
	}
	writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
	return false
}

func toSearchResult(m model.Match) model.SearchResult {
	res := model.SearchResult{Offset: m.Offset, Spans: m.Spans}
	for _, b := range m.Bytes {
		res.Bytes = append(res.Bytes, int(b))
	}
	return res
}

func HandleSearch(w http.ResponseWriter, r *http.Request) {
	var input model.SearchRequestBody
	if !decodeBody(w, r, &input) {
		return
	}

	gap := input.MaxNoteGap
	if gap == 0 {
		gap = constants.GetDefaultNoteGap()
	}
	if err := search.ValidateNoteGap(gap); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := melody.FromMML(input.MML)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	matches, truncated, err := search.Collect(r.Context(), input.Data, p, gap, constants.GetMaxResults())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := model.SearchResponse{
		Id:         uuid.New().String(),
		NumMatches: len(matches),
		Truncated:  truncated,
		Root:       p.Root,
		Deltas:     p.Deltas(),
		Results:    make([]model.SearchResult, 0, len(matches)),
	}
	for _, m := range matches {
		res.Results = append(res.Results, toSearchResult(m))
	}

	log.Printf("search %v: %v notes, %v bytes, %v matches", res.Id, p.Len(), len(input.Data), res.NumMatches)
	writeJSON(w, http.StatusOK, res)
}

func HandleParse(w http.ResponseWriter, r *http.Request) {
	var input model.ParseRequestBody
	if !decodeBody(w, r, &input) {
		return
	}

	notes, err := mml.Parse(input.MML)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := melody.Normalize(notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.ParseResponse{Notes: notes, Deltas: p.Deltas()})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/search", HandleSearch).Methods("POST")
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	return cors.Default().Handler(router)
}

func serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %v", addr)
	err := srv.ListenAndServe()
	cancel()
	<-stopped

	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server failed")
	}
	return nil
}
