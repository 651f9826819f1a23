// Package server exposes the correction engines over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/artillery-calculator/internal/calculator"
	"github.com/iwvelando/artillery-calculator/internal/config"
	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/output"
	"github.com/iwvelando/artillery-calculator/pkg/wind"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	router := mux.NewRouter()

	// Per-mode endpoints taking the mission section as JSON
	router.HandleFunc("/api/firing", h.modeHandler(constants.ModeDirect)).Methods(http.MethodPost)
	router.HandleFunc("/api/triangulation", h.modeHandler(constants.ModeTriangulation)).Methods(http.MethodPost)
	router.HandleFunc("/api/group", h.modeHandler(constants.ModeGroup)).Methods(http.MethodPost)

	// Grid placement replay for group fire
	router.HandleFunc("/api/group/layout", h.handleLayout).Methods(http.MethodPost)

	// Full mission file upload
	router.HandleFunc("/api/mission", h.handleMissionUpload).Methods(http.MethodPost)

	// Mission serialization for downloads
	router.HandleFunc("/api/mission/export", h.handleMissionExport).Methods(http.MethodPost)

	router.HandleFunc("/api/artillery-classes", h.handleArtilleryClasses).Methods(http.MethodGet)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return router
}

type missionResponse struct {
	calculator.Report
	CSV        string `json:"csv"`
	Duration   string `json:"duration"`
	ConfigYAML string `json:"configYaml,omitempty"`
}

type artilleryClass struct {
	Name              string  `json:"name"`
	DeviationPerLevel float64 `json:"deviationPerLevel"`
	MaxDeviation      float64 `json:"maxDeviation"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleArtilleryClasses(w http.ResponseWriter, r *http.Request) {
	classes := make([]artilleryClass, 0, len(wind.Classes))
	for _, class := range wind.Classes {
		perLevel, err := class.DeviationPerLevel()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleArtilleryClasses")
			return
		}
		maxDeviation, _ := wind.MaxDeviation(class)
		classes = append(classes, artilleryClass{
			Name:              class.String(),
			DeviationPerLevel: perLevel,
			MaxDeviation:      maxDeviation,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"classes": classes,
	})
}

// modeHandler decodes the mission section of a request body as JSON, forces
// its mode and runs it.
func (h *handler) modeHandler(mode string) http.HandlerFunc {
	op := "server.handle_" + mode
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		payload, ok := h.decodePayload(w, r, op)
		if !ok {
			return
		}
		payload["mode"] = mode

		configBytes, err := yaml.Marshal(map[string]interface{}{"mission": payload})
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode mission: %v", err), op)
			return
		}

		h.runMission(w, configBytes, start, op, false)
	}
}

func (h *handler) handleMissionUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	op := "server.handleMissionUpload"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing mission file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read mission: %v", err), op)
		return
	}

	h.runMission(w, buf.Bytes(), start, op, true)
}

func (h *handler) handleMissionExport(w http.ResponseWriter, r *http.Request) {
	op := "server.handleMissionExport"
	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode mission: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) decodePayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

func (h *handler) runMission(w http.ResponseWriter, configBytes []byte, start time.Time, op string, echoConfig bool) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes), config.WithoutEnv())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	report, err := calculator.Run(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	response := missionResponse{
		Report:   report,
		CSV:      output.CsvString(report),
		Duration: elapsed.String(),
	}
	if echoConfig {
		response.ConfigYAML = string(configBytes)
	}

	h.logger.Info("mission computed",
		zap.String("op", op),
		zap.String("mode", report.Mode),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "mission"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
