package net

import (
	"bytes"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PixelFlood/internal/state"
)

func TestFeedSnapshot(t *testing.T) {
	canvas := state.NewCanvas(12, 6)
	canvas.BlendSet(2, 3, state.NewColor(0x10, 0x20, 0x30, 0xff))
	srv := httptest.NewServer(NewFeed(canvas, 10*time.Millisecond).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snapshot.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	r, g, b, _ := img.At(2, 3).RGBA()
	assert.Equal(t, []uint32{0x10, 0x20, 0x30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestFeedStreamPushesChanges(t *testing.T) {
	canvas := state.NewCanvas(12, 6)
	srv := httptest.NewServer(NewFeed(canvas, 10*time.Millisecond).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readFrame := func() (int, int, int) {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		kind, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, kind)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		r, g, b, _ := img.At(0, 0).RGBA()
		return int(r >> 8), int(g >> 8), int(b >> 8)
	}

	r, g, b := readFrame()
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})

	canvas.BlendSet(0, 0, state.NewColor(0xff, 0x80, 0x01, 0xff))
	r, g, b = readFrame()
	assert.Equal(t, []int{0xff, 0x80, 0x01}, []int{r, g, b})
}
