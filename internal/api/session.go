package api

import (
	"sync"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// ChatSession is a stateful conversation. It carries the [cid, rid, rcid]
// tuple between turns so each prompt continues the same thread, and tracks
// the last turn's output for candidate branching. A failed turn never
// advances the tuple, so the session can be retried as if the turn had not
// happened.
type ChatSession struct {
	client *Client
	model  models.Model

	mu         sync.RWMutex
	meta       models.ChatMetadata
	lastOutput *models.ModelOutput
}

// SendMessage submits a prompt as the next turn of this conversation.
func (s *ChatSession) SendMessage(prompt string) (*models.ModelOutput, error) {
	s.mu.RLock()
	meta := s.meta
	s.mu.RUnlock()

	output, err := s.client.GenerateContent(prompt, &GenerateOptions{
		Model:    s.model,
		Metadata: meta,
	})
	if err != nil {
		return nil, err
	}

	if err := s.recordOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// recordOutput advances the session to the state the output describes. The
// tuple update is staged on a copy so a bad metadata list leaves the session
// untouched.
func (s *ChatSession) recordOutput(output *models.ModelOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.meta
	if err := staged.Set(output.Metadata); err != nil {
		return err
	}
	if rcid := output.RCID(); rcid != "" {
		staged.SetRCID(rcid)
	}

	s.meta = staged
	s.lastOutput = output
	return nil
}

// ChooseCandidate switches the conversation to a different candidate of the
// last turn. Subsequent turns continue from that candidate's branch.
func (s *ChatSession) ChooseCandidate(index int) (*models.ModelOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastOutput == nil {
		return nil, apierrors.ErrNoPriorOutput
	}
	if index < 0 || index >= len(s.lastOutput.Candidates) {
		return nil, apierrors.ErrIndexOutOfRange
	}

	s.lastOutput.Chosen = index
	s.meta.SetRCID(s.lastOutput.Candidates[index].RCID)
	return s.lastOutput, nil
}

// SetMetadata replaces the conversation tuple, for resuming a persisted
// conversation.
func (s *ChatSession) SetMetadata(values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta.Set(values)
}

// Metadata returns a copy of the current conversation tuple.
func (s *ChatSession) Metadata() models.ChatMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// LastOutput returns the last successful turn, or nil before the first one.
func (s *ChatSession) LastOutput() *models.ModelOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOutput
}

// Model returns the model this session generates with.
func (s *ChatSession) Model() models.Model {
	return s.model
}

// CID returns the conversation id, if assigned.
func (s *ChatSession) CID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta.CID()
}

// RID returns the last reply id, if assigned.
func (s *ChatSession) RID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta.RID()
}

// RCID returns the active reply candidate id, if assigned.
func (s *ChatSession) RCID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta.RCID()
}

// SetCID pins the conversation id.
func (s *ChatSession) SetCID(cid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.SetCID(cid)
}

// SetRID pins the reply id.
func (s *ChatSession) SetRID(rid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.SetRID(rid)
}

// SetRCID pins the reply candidate id.
func (s *ChatSession) SetRCID(rcid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.SetRCID(rcid)
}
