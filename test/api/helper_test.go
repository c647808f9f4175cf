package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Response struct {
	StatusCode int
	Status     string                 `json:"status"`
	Message    string                 `json:"message"`
	RawData    json.RawMessage        `json:"-"`
	Data       map[string]interface{} `json:"-"`
}

func (r Response) IsSuccess() bool {
	return r.Status == "success"
}

func (r Response) GetString(key string) string {
	if val, ok := r.Data[key].(string); ok {
		return val
	}
	return ""
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func makeRequest(method, path string, body interface{}, token string) Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return Response{Status: "error", Message: fmt.Sprintf("failed to marshal request body: %v", err)}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return Response{Status: "error", Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Response{Status: "error", Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Status: "error", Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Response{StatusCode: resp.StatusCode, Status: "error", Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	response := Response{
		StatusCode: resp.StatusCode,
		Status:     envelope.Status,
		Message:    envelope.Message,
		RawData:    envelope.Data,
	}
	// Object payloads are also exposed as a map for convenience.
	var data map[string]interface{}
	if json.Unmarshal(envelope.Data, &data) == nil {
		response.Data = data
	}
	return response
}
