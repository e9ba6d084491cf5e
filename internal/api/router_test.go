package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/api"
	"github.com/d60-Lab/commentlog/internal/api/handler"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/internal/store/storetest"
	"github.com/d60-Lab/commentlog/pkg/auth"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

var (
	alice = address.Derive("http-user", []byte("alice"))
	bob   = address.Derive("http-user", []byte("bob"))
	carol = address.Derive("http-user", []byte("carol"))
)

func newServer(t *testing.T, faucet bool) (*gin.Engine, *auth.Signer) {
	cfg := &config.Config{
		Server:  config.ServerConfig{Addr: ":0", Mode: gin.TestMode},
		Tracing: config.TracingConfig{ServiceName: "commentlog-test"},
		Wallet:  config.WalletConfig{FaucetEnabled: faucet},
	}
	st := storetest.NewRedis(t)
	wallet := service.NewWallet(st)
	h := handler.New(
		service.NewPostService(st),
		service.NewLikeService(st),
		service.NewTipService(st, wallet),
		wallet,
		service.NewRelationshipService(st),
		service.NewProfileService(st),
	)
	signer := auth.NewSigner("router-test-secret-0123", time.Hour)
	return api.NewRouter(cfg, h, signer), signer
}

func as(t *testing.T, engine *gin.Engine, signer *auth.Signer, who address.Address) *client {
	tok, err := signer.Issue(who)
	require.NoError(t, err)
	return &client{t: t, engine: engine, token: tok}
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func errorCode(t *testing.T, env envelope) string {
	return decode[handler.ErrorBody](t, env.Data).Error
}

func TestCommentFlowOverHTTP(t *testing.T) {
	engine, signer := newServer(t, false)
	anon := &client{t: t, engine: engine}
	a := as(t, engine, signer, alice)
	b := as(t, engine, signer, bob)
	cl := as(t, engine, signer, carol)

	code, _ := anon.do(http.MethodPost, "/api/v1/posts", gin.H{"topic": "t", "content": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := a.do(http.MethodPost, "/api/v1/posts", gin.H{"topic": "日常", "content": "hello"})
	require.Equal(t, http.StatusOK, code)
	post := decode[struct {
		Address address.Address `json:"address"`
	}](t, env.Data).Address
	postPath := "/api/v1/posts/" + post.String()

	code, env = a.do(http.MethodPost, postPath+"/pages", nil)
	require.Equal(t, http.StatusOK, code)
	page0 := decode[struct {
		Address address.Address `json:"address"`
	}](t, env.Data).Address
	assert.Equal(t, address.CommentPageAddress(post, 0), page0)

	for i := 0; i < 10; i++ {
		code, env = b.do(http.MethodPost, postPath+"/comments", gin.H{"page": page0, "content": fmt.Sprintf("c%d", i)})
		require.Equal(t, http.StatusOK, code, env.Message)
		assert.EqualValues(t, i, decode[map[string]uint64](t, env.Data)["index"])
	}

	code, env = b.do(http.MethodPost, postPath+"/comments", gin.H{"page": page0, "content": "overflow"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "page_full", errorCode(t, env))
	assert.True(t, decode[handler.ErrorBody](t, env.Data).Retryable)

	code, env = anon.do(http.MethodGet, "/api/v1/addresses/comment-page?post="+post.String()+"&index=1", nil)
	require.Equal(t, http.StatusOK, code)
	page1 := decode[map[string]address.Address](t, env.Data)["address"]

	code, env = b.do(http.MethodPost, postPath+"/comments", gin.H{"page": page1, "content": "early"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "page_not_found", errorCode(t, env))

	code, _ = b.do(http.MethodPost, postPath+"/pages", nil)
	require.Equal(t, http.StatusOK, code)
	code, env = b.do(http.MethodPost, postPath+"/comments", gin.H{"page": page1, "content": "c10", "parent_index": 3})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 10, decode[map[string]uint64](t, env.Data)["index"])

	// 空内容与省略 parent_index 都是合法的
	code, env = b.do(http.MethodPost, postPath+"/comments", gin.H{"page": page1, "content": ""})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.EqualValues(t, 11, decode[map[string]uint64](t, env.Data)["index"])

	code, env = anon.do(http.MethodGet, postPath+"/comments", nil)
	require.Equal(t, http.StatusOK, code)
	window := decode[service.CommentWindow](t, env.Data)
	assert.Equal(t, uint64(12), window.CommentCount)
	assert.Len(t, window.List, 12)
	assert.Nil(t, window.NextPage)

	code, env = anon.do(http.MethodGet, postPath+"/comments?from_page=1&pages=1", nil)
	require.Equal(t, http.StatusOK, code)
	window = decode[service.CommentWindow](t, env.Data)
	require.Len(t, window.List, 2)
	assert.Equal(t, uint64(10), window.List[0].Index)
	assert.Equal(t, uint64(3), window.List[0].ParentIndex)
	assert.Equal(t, model.NoParent, window.List[1].ParentIndex)
	assert.Empty(t, window.List[1].Content)

	// 评论点赞
	code, _ = cl.do(http.MethodPost, postPath+"/comments/5/like", gin.H{"page": page0})
	require.Equal(t, http.StatusOK, code)
	code, env = cl.do(http.MethodPost, postPath+"/comments/5/like", gin.H{"page": page0})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already_liked", errorCode(t, env))
	code, env = cl.do(http.MethodPost, postPath+"/comments/1024/like", gin.H{"page": page0})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "index_out_of_bounds", errorCode(t, env))
	code, env = cl.do(http.MethodGet, postPath+"/comments/5/liked", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[map[string]bool](t, env.Data)["liked"])

	code, env = anon.do(http.MethodGet, postPath+"/pages/0", nil)
	require.Equal(t, http.StatusOK, code)
	pg := decode[struct {
		Page struct {
			Comments []struct {
				LikeCount uint32 `json:"like_count"`
			} `json:"comments"`
		} `json:"page"`
	}](t, env.Data)
	require.Len(t, pg.Page.Comments, 10)
	assert.Equal(t, uint32(1), pg.Page.Comments[5].LikeCount)
}

func TestSocialFlowOverHTTP(t *testing.T) {
	engine, signer := newServer(t, true)
	anon := &client{t: t, engine: engine}
	a := as(t, engine, signer, alice)
	b := as(t, engine, signer, bob)

	code, env := a.do(http.MethodPost, "/api/v1/posts", gin.H{"topic": "t", "content": "tip me"})
	require.Equal(t, http.StatusOK, code)
	post := decode[struct {
		Address address.Address `json:"address"`
	}](t, env.Data).Address
	postPath := "/api/v1/posts/" + post.String()

	code, _ = b.do(http.MethodPost, postPath+"/like", nil)
	require.Equal(t, http.StatusOK, code)
	code, env = b.do(http.MethodPost, postPath+"/like", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already_liked", errorCode(t, env))

	code, _ = b.do(http.MethodPost, "/api/v1/wallet/deposit", gin.H{"amount": 50})
	require.Equal(t, http.StatusOK, code)
	code, _ = b.do(http.MethodPost, postPath+"/tips", gin.H{"author": alice, "amount": 20})
	require.Equal(t, http.StatusOK, code)
	code, env = b.do(http.MethodPost, postPath+"/tips", gin.H{"author": alice, "amount": 100})
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "insufficient_funds", errorCode(t, env))
	code, env = b.do(http.MethodPost, postPath+"/tips", gin.H{"author": bob, "amount": 1})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "author_mismatch", errorCode(t, env))

	code, env = b.do(http.MethodGet, "/api/v1/wallet/balance", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 30, decode[map[string]uint64](t, env.Data)["amount"])

	code, env = anon.do(http.MethodGet, "/api/v1/profiles/"+alice.String(), nil)
	require.Equal(t, http.StatusOK, code)
	prof := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 1, prof["post_count"])
	assert.EqualValues(t, 1, prof["received_like_count"])
	assert.EqualValues(t, 20, prof["received_tip_amount"])

	code, _ = b.do(http.MethodPost, "/api/v1/relations/follow", gin.H{"target": alice})
	require.Equal(t, http.StatusOK, code)
	code, env = b.do(http.MethodPost, "/api/v1/relations/follow", gin.H{"target": alice})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already_following", errorCode(t, env))
	code, env = b.do(http.MethodPost, "/api/v1/relations/follow", gin.H{"target": bob})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "follow_self", errorCode(t, env))

	code, env = anon.do(http.MethodGet, "/api/v1/relations/"+alice.String()+"/fans", nil)
	require.Equal(t, http.StatusOK, code)
	fans := decode[struct {
		List []address.Address `json:"list"`
	}](t, env.Data)
	assert.Equal(t, []address.Address{bob}, fans.List)

	code, _ = b.do(http.MethodPost, "/api/v1/relations/unfollow", gin.H{"target": alice})
	require.Equal(t, http.StatusOK, code)
	code, env = b.do(http.MethodPost, "/api/v1/relations/unfollow", gin.H{"target": alice})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "not_following", errorCode(t, env))
}

func TestBadInput(t *testing.T) {
	engine, signer := newServer(t, false)
	anon := &client{t: t, engine: engine}
	b := as(t, engine, signer, bob)

	code, _ := anon.do(http.MethodGet, "/api/v1/posts/not-hex", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	missing := address.Derive(address.NamespacePost, []byte("missing"))
	code, env := anon.do(http.MethodGet, "/api/v1/posts/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "post_not_found", errorCode(t, env))

	code, _ = b.do(http.MethodPost, "/api/v1/relations/follow", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)

	bad := &client{t: t, engine: engine, token: "garbage"}
	code, _ = bad.do(http.MethodGet, "/api/v1/wallet/balance", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = anon.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDepositRouteOffByDefault(t *testing.T) {
	engine, signer := newServer(t, false)
	b := as(t, engine, signer, bob)

	code, _ := b.do(http.MethodPost, "/api/v1/wallet/deposit", gin.H{"amount": 50})
	assert.Equal(t, http.StatusNotFound, code)

	code, env := b.do(http.MethodGet, "/api/v1/wallet/balance", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, decode[map[string]uint64](t, env.Data)["amount"])
}
