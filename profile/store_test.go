package profile

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hostelhub/globals"
	"hostelhub/kv"
	"hostelhub/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct {
	kv.Store
	getErr, setErr, removeErr error
}

func (b *brokenKV) Get(ctx context.Context, key string) (string, error) {
	if b.getErr != nil {
		return "", b.getErr
	}
	return b.Store.Get(ctx, key)
}

func (b *brokenKV) Set(ctx context.Context, key, value string) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.Store.Set(ctx, key, value)
}

func (b *brokenKV) Remove(ctx context.Context, key string) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	return b.Store.Remove(ctx, key)
}

func strp(s string) *string { return &s }

func TestUpdateShallowMerges(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewStore(mem, DefaultKey, nil)
	s.Load(ctx)

	_, err := s.Update(ctx, models.ProfileUpdate{
		Name:         strp("Ada"),
		ProfileImage: strp("/userpic/a.jpg"),
		PersonalInfo: &models.PersonalInfo{FirstName: "Ada", LastName: "L", Email: "old@b.com"},
	})
	require.NoError(t, err)

	_, err = s.Update(ctx, models.ProfileUpdate{Email: strp("a@b.com")})
	require.NoError(t, err)

	loaded := NewStore(mem, DefaultKey, nil).Load(ctx)
	assert.Equal(t, "a@b.com", loaded.Email)
	assert.Equal(t, "Ada", loaded.Name)
	assert.Equal(t, "/userpic/a.jpg", loaded.ProfileImage)
	require.NotNil(t, loaded.PersonalInfo)
	assert.Equal(t, "old@b.com", loaded.PersonalInfo.Email)
}

func TestClearThenLoadReturnsDefault(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewStore(mem, DefaultKey, nil)

	_, err := s.Update(ctx, models.ProfileUpdate{Name: strp("Ada"), Email: strp("a@b.com")})
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, models.UserProfile{}, s.Current())
	assert.Equal(t, models.UserProfile{}, s.Load(ctx))

	_, err = mem.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestLoadFailsSoft(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt blob", func(t *testing.T) {
		mem := kv.NewMemory()
		require.NoError(t, mem.Set(ctx, DefaultKey, "{not json"))
		assert.Equal(t, models.UserProfile{}, NewStore(mem, DefaultKey, nil).Load(ctx))
	})

	t.Run("read error", func(t *testing.T) {
		broken := &brokenKV{Store: kv.NewMemory(), getErr: errors.New("disk gone")}
		assert.Equal(t, models.UserProfile{}, NewStore(broken, DefaultKey, nil).Load(ctx))
	})
}

func TestUpdateKeepsRecordWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	broken := &brokenKV{Store: kv.NewMemory()}
	s := NewStore(broken, DefaultKey, nil)

	_, err := s.Update(ctx, models.ProfileUpdate{Name: strp("Ada")})
	require.NoError(t, err)

	broken.setErr = errors.New("read-only")
	got, err := s.Update(ctx, models.ProfileUpdate{Name: strp("Grace")})
	require.Error(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "Ada", s.Current().Name)
}

func TestClearKeepsRecordWhenRemoveFails(t *testing.T) {
	ctx := context.Background()
	broken := &brokenKV{Store: kv.NewMemory()}
	s := NewStore(broken, DefaultKey, nil)

	_, err := s.Update(ctx, models.ProfileUpdate{Name: strp("Ada")})
	require.NoError(t, err)

	broken.removeErr = errors.New("read-only")
	require.Error(t, s.Clear(ctx))
	assert.Equal(t, "Ada", s.Current().Name)
	assert.Equal(t, "Ada", s.Load(ctx).Name)
}

func TestCurrentIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), DefaultKey, nil)
	_, err := s.Update(ctx, models.ProfileUpdate{PersonalInfo: &models.PersonalInfo{FirstName: "Ada"}})
	require.NoError(t, err)

	p := s.Current()
	p.PersonalInfo.FirstName = "mutated"
	assert.Equal(t, "Ada", s.Current().PersonalInfo.FirstName)
}

func TestDirectoryIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	dir := NewDirectory(mem, nil)

	_, err := dir.For(ctx, "u1").Update(ctx, models.ProfileUpdate{Name: strp("One")})
	require.NoError(t, err)

	assert.Same(t, dir.For(ctx, "u1"), dir.For(ctx, "u1"))
	assert.Empty(t, dir.For(ctx, "u2").Current().Name)

	raw, err := mem.Get(ctx, Key("u1"))
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"One"`)
}

func TestValidatePersonalInfo(t *testing.T) {
	assert.NoError(t, ValidatePersonalInfo(models.PersonalInfo{FirstName: "A", LastName: "B", Email: "a@b.com"}))
	assert.Error(t, ValidatePersonalInfo(models.PersonalInfo{FirstName: "A", Email: "a@b.com"}))
	assert.Error(t, ValidatePersonalInfo(models.PersonalInfo{FirstName: "A", LastName: "B", Email: "not-an-email"}))
}

func withUser(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, id))
}

func TestPersonalInfoHandlerReportsMissingFields(t *testing.T) {
	h := NewHandler(NewDirectory(kv.NewMemory(), nil), t.TempDir(), nil)

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/profile/personal-info",
		strings.NewReader(`{"firstName":"A","email":"a@b.com"}`)), "u1")
	rec := httptest.NewRecorder()
	h.UpdatePersonalInfo(rec, req, httprouter.Params{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lastName")
}

func TestUploadAvatarStoresThumbnail(t *testing.T) {
	dir := t.TempDir()
	profiles := NewDirectory(kv.NewMemory(), nil)
	h := NewHandler(profiles, dir, nil)

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x++ {
		img.Set(x, x%480, color.RGBA{R: 200, A: 255})
	}
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	body, contentType := multipartFile(t, "avatar", "me.png", pngBuf.Bytes())
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/profile/avatar", body), "u1")
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadAvatar(rec, req, httprouter.Params{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := profiles.For(context.Background(), "u1").Current()
	require.True(t, strings.HasPrefix(p.ProfileImage, AvatarURLPrefix))

	f, err := os.Open(filepath.Join(dir, strings.TrimPrefix(p.ProfileImage, AvatarURLPrefix)))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, avatarSize, cfg.Width)
	assert.Equal(t, avatarSize, cfg.Height)
}
