package blobstore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CloudinaryStore uploade les images (data URI ou URL distante) et retourne
// l'URL sécurisée stable. Le dernier segment de chemin de cette URL, extension
// retirée, est le public_id attendu par Delete : c'est le contrat de format
// sur lequel le coeur s'appuie pour dériver sa clef de suppression.
// Client REST minimal : aucun SDK Cloudinary dans la stack, l'API se résume à
// deux POST signés.
type CloudinaryStore struct {
	baseURL   string // surchargé dans les tests
	cloudName string
	apiKey    string
	apiSecret string
	client    *http.Client
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) *CloudinaryStore {
	return &CloudinaryStore{
		baseURL:   "https://api.cloudinary.com/v1_1",
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload envoie l'image et retourne l'URL stable.
func (c *CloudinaryStore) Upload(ctx context.Context, image string) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("file", image)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", c.sign("timestamp="+timestamp))

	var resp uploadResponse
	if err := c.post(ctx, "/image/upload", form, &resp); err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload: empty secure_url")
	}
	return resp.SecureURL, nil
}

// Delete détruit le blob identifié par son public_id.
func (c *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", c.sign("public_id="+publicID+"&timestamp="+timestamp))

	var resp struct {
		Result string `json:"result"`
	}
	if err := c.post(ctx, "/image/destroy", form, &resp); err != nil {
		return err
	}
	// "not found" passe : le blob a déjà disparu, l'intention est satisfaite.
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}

func (c *CloudinaryStore) post(ctx context.Context, path string, form url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s%s", c.baseURL, c.cloudName, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("cloudinary unavailable: status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// sign calcule la signature SHA-1 attendue par l'API (params triés + secret).
func (c *CloudinaryStore) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
