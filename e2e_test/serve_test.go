package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jsphweid/ustkit/cmd"
	"github.com/jsphweid/ustkit/midi"
	"github.com/jsphweid/ustkit/model"
	"github.com/jsphweid/ustkit/ust"
	"github.com/stretchr/testify/assert"
)

const project = `[#SETTING]
Tempo=120
ProjectName=e2e
[#0000]
Length=121
Lyric=a
NoteNum=60
[#0001]
Length=179
Lyric=R
NoteNum=60
[#0002]
Length=480
Lyric=i
NoteNum=64
[#TRACKEND]
`

const nn = "120 4/4\n2\nla la 0 4 33 0 0 0 0 0 0 0 50\nli li 6 2 31 0 0 0 0 0 0 0 50\n"

func post(path string, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func readBody(resp *http.Response) []byte {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err.Error())
	}
	return data
}

func TestConvertNNE2E(t *testing.T) {
	resp := post("/convert/nn", nn)
	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	_, err := uuid.Parse(resp.Header.Get("X-Request-Id"))
	assert.NoError(err)

	s, err := ust.ParseBytes(readBody(resp))
	assert.NoError(err)
	assert.Equal(3, s.Count())
	assert.Equal("la", s.At(0).Lyric())
	assert.True(s.At(1).IsRest())
	assert.Equal(120.0, s.At(1).Len())
	assert.Equal(52, s.At(2).NoteNum())
}

func TestConvertNNBadRowE2E(t *testing.T) {
	resp := post("/convert/nn", "120 4/4\n1\nla la 0\n")
	assert.Equal(t, 400, resp.StatusCode)

	var e model.ErrorResponse
	assert.NoError(t, json.Unmarshal(readBody(resp), &e))
	assert.Contains(t, e.Error, "nn line 3")
	assert.Equal(t, resp.Header.Get("X-Request-Id"), e.RequestId)
}

func TestQuantizeE2E(t *testing.T) {
	resp := post("/quantize?standard=120", project)
	assert.Equal(t, 200, resp.StatusCode)

	s, err := ust.ParseBytes(readBody(resp))
	assert.NoError(t, err)
	assert.Equal(t, 120.0, s.At(0).Len())
	assert.Equal(t, 120.0, s.At(1).Len())
	assert.Equal(t, 480.0, s.At(2).Len())

	assert.Equal(t, 400, post("/quantize?standard=0", project).StatusCode)
	assert.Equal(t, 400, post("/quantize?standard=x", project).StatusCode)
}

func TestInspectE2E(t *testing.T) {
	resp := post("/inspect?name=e2e.ust", project)
	assert.Equal(t, 200, resp.StatusCode)

	var sum model.Summary
	assert.NoError(t, json.Unmarshal(readBody(resp), &sum))
	high, low := 64, 60
	assert.Equal(t, model.Summary{
		File:        "e2e.ust",
		ProjectName: "e2e",
		Tempo:       120,
		Notes:       3,
		Voiced:      2,
		Length:      780,
		High:        &high,
		Low:         &low,
	}, sum)
}

func TestInspectBadProjectE2E(t *testing.T) {
	resp := post("/inspect", "[#0000]\nLength=abc\nLyric=a\nNoteNum=60\n")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestExportMidiE2E(t *testing.T) {
	resp := post("/export/midi", project)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	mf, err := midi.Read(bytes.NewReader(readBody(resp)))
	assert.NoError(t, err)
	s, err := midi.ToSequence(mf, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, "i", s.At(2).Lyric())
}

func TestWrongMethodE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Result().StatusCode)
}
