package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

// fakeExecutor simulates whisper.cpp: it writes transcript to the
// <--output-file prefix>.txt the command requested.
type fakeExecutor struct {
	transcript string
	err        error
	calls      [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	for i, arg := range args {
		if arg == "--output-file" && i+1 < len(args) {
			return "", os.WriteFile(args[i+1]+".txt", []byte(f.transcript), 0644)
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func whisperConfig() config.WhisperConfig {
	return config.WhisperConfig{
		BinaryPath: "/opt/whisper/main",
		ModelDir:   "/opt/whisper/models",
		Language:   "en",
		Threads:    8,
	}
}

func TestWhisperTranscribe(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "lecture.wav")
	exec := &fakeExecutor{transcript: "  hello from the lecture \n"}

	w := NewWhisper(whisperConfig(), "whisper-base", exec, logger.New("error"))
	text, err := w.Transcribe(context.Background(), audioPath, TranscribeOptions{})

	require.NoError(t, err)
	assert.Equal(t, "hello from the lecture", text, "output is trimmed")

	require.Len(t, exec.calls, 1)
	args := exec.calls[0]
	assert.Equal(t, "/opt/whisper/main", args[0])
	assert.Contains(t, args, filepath.Join("/opt/whisper/models", "whisper-base.bin"))
	assert.Contains(t, args, audioPath)
	assert.NotContains(t, args, "-bs", "no beam flags on the first pass")

	// The intermediate whisper output is cleaned up after reading.
	_, err = os.Stat(filepath.Join(dir, "lecture_whisper-base.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWhisperTranscribeWideBeam(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{transcript: "retry output"}

	w := NewWhisper(whisperConfig(), "whisper-base", exec, logger.New("error"))
	_, err := w.Transcribe(context.Background(), filepath.Join(dir, "lecture.wav"), TranscribeOptions{WideBeam: true})

	require.NoError(t, err)
	args := exec.calls[0]
	assert.Contains(t, args, "-bs")
	assert.Contains(t, args, "-bo")
}

func TestWhisperTranscribeOutputPrefixPerModel(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{transcript: "text"}

	w := NewWhisper(whisperConfig(), "whisper-small", exec, logger.New("error"))
	_, err := w.Transcribe(context.Background(), filepath.Join(dir, "lecture.wav"), TranscribeOptions{})

	require.NoError(t, err)
	// Prefix carries the model id so concurrent models never clash on the
	// same audio file.
	assert.Contains(t, exec.calls[0], filepath.Join(dir, "lecture_whisper-small"))
}

func TestWhisperTranscribeCommandFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}

	w := NewWhisper(whisperConfig(), "whisper-base", exec, logger.New("error"))
	_, err := w.Transcribe(context.Background(), "/tmp/lecture.wav", TranscribeOptions{})

	assert.ErrorIs(t, err, ErrInference)
}

func TestWhisperTranscribeMissingOutput(t *testing.T) {
	// The command succeeds but never writes the transcript file.
	w := NewWhisper(whisperConfig(), "whisper-base", noWriteExecutor{}, logger.New("error"))
	_, err := w.Transcribe(context.Background(), filepath.Join(t.TempDir(), "lecture.wav"), TranscribeOptions{})

	require.ErrorIs(t, err, ErrInference)
	assert.Contains(t, err.Error(), "produced no output")
}

type noWriteExecutor struct{}

func (noWriteExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", nil
}

func (noWriteExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return "", nil
}
