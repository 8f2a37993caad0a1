package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/color-game/palettetool/datastore"
	"github.com/color-game/palettetool/extractor"
	"github.com/color-game/palettetool/models"
	"github.com/color-game/palettetool/render"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (app *Application) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, app.maxBodyBytes()))
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Palette Tool API")
}

// POST /v1/extract?algo=&filename= - raw text in, palette document out
func (app *Application) extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	body, err := app.readBody(w, r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if !utf8.Valid(body) {
		app.badRequest(w, r, errors.New("request body is not valid UTF-8 text"))
		return
	}

	query := r.URL.Query()
	ext, err := extractor.NewExtractor(extractor.Algorithm(query.Get("algo")), extractor.Options{
		Filename: query.Get("filename"),
		Language: query.Get("language"),
	})
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	doc, err := app.Assembler.Assemble(ext.Extract(string(body)))
	if err != nil {
		app.invalidDocument(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// POST /v1/render - {document, template} in, rendered text out
func (app *Application) render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.RenderRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, app.maxBodyBytes())).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	doc, err := models.ParseDocument(req.Document)
	if err != nil {
		app.invalidDocument(w, r, err)
		return
	}

	var out bytes.Buffer
	if err := render.RenderDocument(&out, doc, "request", req.Template); err != nil {
		app.badRequest(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(out.Bytes())
}

// /v1/palettes - GET lists, POST stores (token required)
func (app *Application) palettes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.listPalettes(w, r)
	case http.MethodPost:
		app.authenticate(app.createPalette)(w, r)
	default:
		app.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

// /v1/palettes/{id} - GET fetches, DELETE removes (token required)
func (app *Application) palette(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.getPalette(w, r)
	case http.MethodDelete:
		app.authenticate(app.deletePalette)(w, r)
	default:
		app.methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (app *Application) listPalettes(w http.ResponseWriter, r *http.Request) {
	summaries, err := app.PaletteRepo.GetAll()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (app *Application) createPalette(w http.ResponseWriter, r *http.Request) {
	body, err := app.readBody(w, r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	doc, err := models.ParseDocument(body)
	if err != nil {
		app.invalidDocument(w, r, err)
		return
	}

	stored, err := models.NewStoredPalette(doc, app.now())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Identical content is stored once
	existing, err := app.PaletteRepo.GetByHash(stored.ContentHash)
	if err == nil {
		writeJSON(w, http.StatusOK, existing)
		return
	}
	var noRows datastore.NoRowsError
	if !errors.As(err, &noRows) {
		app.internalServerError(w, r, err)
		return
	}

	created, err := app.PaletteRepo.Create(stored)
	if err != nil {
		// A concurrent request may have stored the same content first
		if existing, lookupErr := app.PaletteRepo.GetByHash(stored.ContentHash); lookupErr == nil {
			writeJSON(w, http.StatusOK, existing)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	log.Printf("Stored palette %s (%q, %d colors)", created.ID, created.Title, created.ColorCount)
	writeJSON(w, http.StatusCreated, created)
}

func (app *Application) paletteID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("palette id must be a UUID: %v", err))
		return "", false
	}
	return id.String(), true
}

func (app *Application) getPalette(w http.ResponseWriter, r *http.Request) {
	id, ok := app.paletteID(w, r)
	if !ok {
		return
	}

	stored, err := app.PaletteRepo.Get(id)
	var noRows datastore.NoRowsError
	switch {
	case errors.As(err, &noRows):
		app.notFound(w, r, fmt.Errorf("no palette with id %s", id))
	case err != nil:
		app.internalServerError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, stored)
	}
}

func (app *Application) deletePalette(w http.ResponseWriter, r *http.Request) {
	id, ok := app.paletteID(w, r)
	if !ok {
		return
	}

	err := app.PaletteRepo.Delete(id)
	var noRows datastore.NoRowsError
	switch {
	case errors.As(err, &noRows):
		app.notFound(w, r, fmt.Errorf("no palette with id %s", id))
	case err != nil:
		app.internalServerError(w, r, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
