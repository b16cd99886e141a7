package dto

import (
	"time"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

// SendTransferResponse is returned once a transfer has been encrypted, split and
// handed to its channels. Delivery results arrive on the status stream.
type SendTransferResponse struct {
	TransferID string   `json:"transfer_id"`
	TotalParts int      `json:"total_parts"`
	Channels   []string `json:"channels"`
}

// MapSendResultToResponse converts a send result to an API response.
func MapSendResultToResponse(result *transferDomain.SendResult) SendTransferResponse {
	return SendTransferResponse{
		TransferID: result.TransferID.String(),
		TotalParts: result.TotalParts,
		Channels:   result.Channels,
	}
}

// UntrustedResponse is returned when the trust gate blocks a send.
type UntrustedResponse struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Reasons     []string `json:"reasons"`
	Description string   `json:"description"`
}

// MapVerdictToUntrustedResponse converts an unsafe verdict to an API response.
func MapVerdictToUntrustedResponse(verdict trustDomain.Verdict) UntrustedResponse {
	return UntrustedResponse{
		Error:       "forbidden",
		Message:     transferDomain.ErrUntrustedEnvironment.Error(),
		Reasons:     verdict.Reasons,
		Description: verdict.Description(),
	}
}

// MessageResponse is a delivered message. Data is the exact payload as base64;
// Content is empty when IsBinary is set.
type MessageResponse struct {
	ID               string    `json:"id"`
	Content          string    `json:"content"`
	Data             []byte    `json:"data"`
	IsBinary         bool      `json:"is_binary"`
	Timestamp        time.Time `json:"timestamp"`
	IsEncrypted      bool      `json:"is_encrypted"`
	TokenizedContent *string   `json:"tokenized_content,omitempty"`
	TransferID       string    `json:"transfer_id,omitempty"`
}

// ListMessagesResponse is a page of delivered messages, newest first.
type ListMessagesResponse struct {
	Data  []MessageResponse `json:"data"`
	Total int               `json:"total"`
}

// MapMessagesToListResponse converts delivered messages to an API response.
func MapMessagesToListResponse(messages []transferDomain.SecureMessage, total int) ListMessagesResponse {
	data := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp := MessageResponse{
			ID:               m.ID.String(),
			Content:          m.Content,
			Data:             m.Data,
			IsBinary:         m.IsBinary,
			Timestamp:        m.Timestamp,
			IsEncrypted:      m.IsEncrypted,
			TokenizedContent: m.TokenizedContent,
		}
		if m.TransferID != nil {
			resp.TransferID = m.TransferID.String()
		}
		data = append(data, resp)
	}
	return ListMessagesResponse{Data: data, Total: total}
}

// PortableExportResponse carries the portable encoding.
type PortableExportResponse struct {
	Portable string `json:"portable"`
}

// PortableImportResponse carries the decoded bytes, base64 in JSON.
type PortableImportResponse struct {
	Data []byte `json:"data"`
}
