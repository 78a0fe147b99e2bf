package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/convert"
	"github.com/jsphweid/ustkit/midi"
	"github.com/jsphweid/ustkit/model"
	"github.com/jsphweid/ustkit/ust"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const (
	requestIdHeader = "X-Request-Id"
	maxBodyBytes    = 16 << 20
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetServeAddr(), "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversions over HTTP",
	Long:  `Serves NN conversion, quantization, inspection and MIDI export over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("Listening on %v", serveAddr)
		log.Fatal(http.ListenAndServe(serveAddr, NewRouter()))
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(withRequestId)
	router.HandleFunc("/convert/nn", HandleConvertNN).Methods("POST")
	router.HandleFunc("/quantize", HandleQuantize).Methods("POST")
	router.HandleFunc("/inspect", HandleInspect).Methods("POST")
	router.HandleFunc("/export/midi", HandleExportMidi).Methods("POST")
	return cors.Default().Handler(router)
}

func withRequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set(requestIdHeader, id)
		log.Printf("%v %v %v", id, r.Method, r.URL.Path)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	id := w.Header().Get(requestIdHeader)
	log.Printf("%v failed: %v", id, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error(), RequestId: id})
}

func writeProject(w http.ResponseWriter, s *ust.Sequence) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.WriteTo(w)
}

func readProject(r *http.Request) (*ust.Sequence, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read request body")
	}
	return ust.ParseBytes(body)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "bad %v", key)
	}
	return n, nil
}

func HandleConvertNN(w http.ResponseWriter, r *http.Request) {
	var opts convert.NNOptions
	if alt := r.URL.Query().Get("alt"); alt != "" {
		b, err := strconv.ParseBool(alt)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(err, "bad alt"))
			return
		}
		opts.UseAltLyric = b
	}
	thin, err := queryInt(r, "thin", constants.GetThinStride())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts.ThinStride = thin

	s, err := convert.FromNN(r.Body, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeProject(w, s)
}

func HandleQuantize(w http.ResponseWriter, r *http.Request) {
	standard, err := queryInt(r, "standard", constants.TicksPerBeat/4)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s, err := readProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.Quantize(standard); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeProject(w, s)
}

func HandleInspect(w http.ResponseWriter, r *http.Request) {
	s, err := readProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sum := model.NewSummary(r.URL.Query().Get("name"), s)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sum)
}

func HandleExportMidi(w http.ResponseWriter, r *http.Request) {
	s, err := readProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := midi.Export(s, &buf); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}
