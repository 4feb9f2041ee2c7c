package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Categories follow the exact same contract as accounts; this smoke test
// covers the lifecycle and the ownership boundary.
func TestCategoryLifecycleAndIsolation(t *testing.T) {
	r, _ := newTestEnv(t)
	aliceToken := signup(t, r, "alice")
	bobToken := signup(t, r, "bob")

	id := createCategory(t, r, aliceToken, "Food")

	w := doReq(t, r, http.MethodGet, "/api/categories", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Food", list[0].Name)

	// foreign access: 404
	w = doReq(t, r, http.MethodGet, "/api/categories/"+id, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// rename and delete
	w = doReq(t, r, http.MethodPatch, "/api/categories/"+id, aliceToken, gin.H{"name": "Groceries"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doReq(t, r, http.MethodDelete, "/api/categories/"+id, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doReq(t, r, http.MethodGet, "/api/categories/"+id, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryBulkDeleteOwnerFiltered(t *testing.T) {
	r, _ := newTestEnv(t)
	aliceToken := signup(t, r, "alice")
	bobToken := signup(t, r, "bob")

	ownedID := createCategory(t, r, aliceToken, "Food")
	foreignID := createCategory(t, r, bobToken, "Rent")

	w := doReq(t, r, http.MethodPost, "/api/categories/bulk-delete", aliceToken, gin.H{
		"ids": []string{ownedID, foreignID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var deleted []struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &deleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, ownedID, deleted[0].ID)
}
