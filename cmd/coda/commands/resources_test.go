package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoAmICommand(t *testing.T) {
	setupCLI(t, "json")
	api := newFakeCoda(t)
	api.respond("GET /whoami", http.StatusOK, map[string]interface{}{
		"name": "Ada", "loginId": "ada@example.com", "type": "user", "scoped": true, "tokenName": "cli",
	})

	out, err := runCommand(t, NewWhoAmICommand(), "")
	require.NoError(t, err)

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "ada@example.com", user["loginId"])
	assert.Equal(t, true, user["scoped"])
	assert.Equal(t, "Bearer "+testToken, api.last(http.MethodGet, "/whoami").Header.Get("Authorization"))
}

func TestCommandsRequireToken(t *testing.T) {
	setupCLI(t, "table")

	_, err := runCommand(t, NewWhoAmICommand(), "")
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = runCommand(t, NewDocsCommand(), "", "list")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDocsListCommand(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("GET /docs", http.StatusOK, map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "doc-1", "type": "doc", "name": "Roadmap", "ownerName": "Ada"},
		},
		"nextPageToken": "page-2",
	})

	out, err := runCommand(t, NewDocsCommand(), "", "list", "--owner", "--query", "road", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Roadmap")
	assert.Contains(t, out, "--page-token page-2")

	query := api.last(http.MethodGet, "/docs").Query
	assert.Equal(t, []string{"true"}, query["isOwner"])
	assert.Equal(t, []string{"road"}, query["query"])
	assert.Equal(t, []string{"5"}, query["limit"])
	assert.NotContains(t, query, "isPublished")
}

func TestDocsDeleteCommand_Cancelled(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)

	out, err := runCommand(t, NewDocsCommand(), "n\n", "delete", "https://coda.io/d/Roadmap_dAbCdEf")
	require.NoError(t, err)
	assert.Contains(t, out, "Really delete doc 'AbCdEf'?")
	assert.Contains(t, out, "Cancelled")
	assert.Nil(t, api.last(http.MethodDelete, "/docs/AbCdEf"))
}

func TestDocsDeleteCommand_Confirmed(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("DELETE /docs/AbCdEf", http.StatusAccepted, map[string]interface{}{})

	out, err := runCommand(t, NewDocsCommand(), "yes\n", "delete", "AbCdEf")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully deleted doc 'AbCdEf'")
	assert.NotNil(t, api.last(http.MethodDelete, "/docs/AbCdEf"))
}

func TestRowsUpsertCommand_Body(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("POST /docs/doc-1/tables/grid-1/rows", http.StatusAccepted, map[string]interface{}{
		"requestId": "req-1", "addedRowIds": []string{"i-new"},
	})

	out, err := runCommand(t, NewRowsCommand(), "", "upsert", "doc-1", "grid-1",
		"--cell", "Task=Ship it", "--cell", "Check=42", "--key", "Task")
	require.NoError(t, err)
	assert.Contains(t, out, "Added rows: i-new")
	assert.Contains(t, out, "Mutation req-1 queued")

	req := api.last(http.MethodPost, "/docs/doc-1/tables/grid-1/rows")
	require.NotNil(t, req)

	body := decodeJSONBody(t, req.Body)
	assert.Equal(t, []interface{}{"Task"}, body["keyColumns"])

	rows, ok := body["rows"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)

	cells := rows[0].(map[string]interface{})["cells"].([]interface{})
	require.Len(t, cells, 2)
	assert.Equal(t, map[string]interface{}{"column": "Task", "value": "Ship it"}, cells[0])
	assert.Equal(t, map[string]interface{}{"column": "Check", "value": float64(42)}, cells[1])
}

func TestRowsUpsertCommand_InvalidCell(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)

	_, err := runCommand(t, NewRowsCommand(), "", "upsert", "doc-1", "grid-1", "--cell", "oops")
	require.ErrorIs(t, err, ErrInvalidCellFormat)
	assert.Nil(t, api.last(http.MethodPost, "/docs/doc-1/tables/grid-1/rows"))
}

func TestRowsDeleteCommand(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("DELETE /docs/doc-1/tables/grid-1/rows/i-1", http.StatusAccepted, map[string]interface{}{
		"requestId": "req-one", "id": "i-1",
	})
	api.respond("DELETE /docs/doc-1/tables/grid-1/rows", http.StatusAccepted, map[string]interface{}{
		"requestId": "req-many", "rowIds": []string{"i-1", "i-2"},
	})

	out, err := runCommand(t, NewRowsCommand(), "", "delete", "doc-1", "grid-1", "i-1", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Mutation req-one queued")

	out, err = runCommand(t, NewRowsCommand(), "", "delete", "doc-1", "grid-1", "i-1", "i-2", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleting i-1, i-2")
	assert.Contains(t, out, "Mutation req-many queued")

	body := decodeJSONBody(t, api.last(http.MethodDelete, "/docs/doc-1/tables/grid-1/rows").Body)
	assert.Equal(t, []interface{}{"i-1", "i-2"}, body["rowIds"])
}

func TestRowsListCommand_Query(t *testing.T) {
	setupCLI(t, "json")
	api := newFakeCoda(t)
	api.respond("GET /docs/doc-1/tables/grid-1/rows", http.StatusOK, map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "i-1", "type": "row", "name": "Task one", "index": 0,
				"values": map[string]interface{}{"Status": "Done"}},
		},
		"nextSyncToken": "sync-1",
	})

	out, err := runCommand(t, NewRowsCommand(), "", "list", "doc-1", "grid-1", "--query", "Status=Done")
	require.NoError(t, err)
	assert.Contains(t, out, `"nextSyncToken": "sync-1"`)

	query := api.last(http.MethodGet, "/docs/doc-1/tables/grid-1/rows").Query
	assert.Equal(t, []string{`"Status":"Done"`}, query["query"])
	assert.Equal(t, []string{"true"}, query["useColumnNames"])
}

func TestMutationWaitCommand_Execution(t *testing.T) {
	setupCLI(t, "json")
	api := newFakeCoda(t)
	api.respond("GET /mutationStatus/req-done", http.StatusOK, map[string]interface{}{"completed": true})
	api.respond("GET /mutationStatus/req-slow", http.StatusOK, map[string]interface{}{"completed": false})

	out, err := runCommand(t, NewMutationCommand(), "", "wait", "req-done", "--interval", "1ms", "--attempts", "2")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"requestId":"req-done","completed":true}]`, out)

	out, err = runCommand(t, NewMutationCommand(), "", "wait", "req-done", "req-slow", "--interval", "1ms", "--attempts", "2")
	require.ErrorIs(t, err, ErrMutationNotCompleted)
	assert.Contains(t, err.Error(), "1 of 2 pending")
	assert.JSONEq(t, `[{"requestId":"req-done","completed":true},{"requestId":"req-slow","completed":false}]`, out)
}

func TestAutomationTriggerCommand(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("POST /docs/doc-1/hooks/automation/grid-auto-1", http.StatusAccepted, map[string]interface{}{
		"requestId": "req-hook",
	})

	out, err := runCommand(t, NewAutomationCommand(), `{"source":"cli"}`,
		"trigger", "doc-1", "grid-auto-1", "--payload-file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Mutation req-hook queued")

	body := decodeJSONBody(t, api.last(http.MethodPost, "/docs/doc-1/hooks/automation/grid-auto-1").Body)
	assert.Equal(t, "cli", body["source"])

	_, err = runCommand(t, NewAutomationCommand(), "", "trigger", "doc-1", "grid-auto-1", "--payload", "{not json")
	require.ErrorIs(t, err, ErrInvalidJSON)
}

func TestPermissionsAddCommand(t *testing.T) {
	setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("POST /docs/doc-1/acl/permissions", http.StatusOK, map[string]interface{}{})

	_, err := runCommand(t, NewPermissionsCommand(), "", "add", "doc-1")
	require.ErrorIs(t, err, ErrPrincipalRequired)

	out, err := runCommand(t, NewPermissionsCommand(), "", "add", "doc-1", "--email", "bob@example.com", "--access", "write")
	require.NoError(t, err)
	assert.Equal(t, "Granted write access to bob@example.com\n", out)

	body := decodeJSONBody(t, api.last(http.MethodPost, "/docs/doc-1/acl/permissions").Body)
	assert.Equal(t, "write", body["access"])
	assert.Equal(t, map[string]interface{}{"type": "email", "email": "bob@example.com"}, body["principal"])
}
