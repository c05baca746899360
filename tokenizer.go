package main

import (
	"fmt"
	"log/slog"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer counts model tokens in decoded file content. Implementations must
// be safe for concurrent use since subtrees are measured in parallel.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Close() {}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
	log *slog.Logger
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		w.log.Warn("huggingface tokenizer failed to encode text", "error", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// TokenizerOptions selects and locates a tokenizer.
type TokenizerOptions struct {
	Type  string
	Model string
	File  string
}

// newTokenizer builds the tokenizer described by opts.
func newTokenizer(opts TokenizerOptions, log *slog.Logger) (Tokenizer, error) {
	log.Debug("initializing tokenizer", "type", opts.Type, "model", opts.Model, "file", opts.File)

	switch strings.ToLower(opts.Type) {
	case "", "tiktoken":
		return loadTiktoken(opts.Model, log)
	case "huggingface":
		return loadHuggingFace(opts.Model, opts.File, log)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", opts.Type)
	}
}

func loadTiktoken(model string, log *slog.Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		log.Warn("tiktoken model not found, falling back to default", "model", model, "default", defaultTiktokenModel, "error", err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace(model, file string, log *slog.Logger) (Tokenizer, error) {
	if file != "" {
		log.Debug("loading huggingface tokenizer from file", "file", file)
		ttk, err := pretrained.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", file, err)
		}
		return &HFTokenizerWrapper{htk: ttk, log: log}, nil
	}

	if model == "" {
		model = defaultHFModel
	}
	log.Info("loading huggingface tokenizer (this may download files)", "model", model)

	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk, log: log}, nil
}
