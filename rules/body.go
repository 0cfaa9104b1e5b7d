package rules

import (
	"fmt"
	"strings"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
	"github.com/EmblemCompany/emblem-vault-sdk-sub000/media"
)

// stampPrefix marks base64 PNG payloads embedded in Bitcoin Stamps images.
const stampPrefix = "STAMP:"

// DisplayBody is the presentation payload derived for a vault.
type DisplayBody struct {
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
	Description  string `json:"description"`
	AnimationURL string `json:"animation_url,omitempty"`
	ExternalURL  string `json:"external_url,omitempty"`
	Explorer     string `json:"explorer,omitempty"`
}

// GenerateVaultBody derives the display name, image, and description for a
// vault from its current balances. The first non-native balance drives the
// presentation; registry entries overlay series/order captions and video
// animations.
func (r *BoundRule) GenerateVaultBody(meta emblem.VaultMetadata, data []emblem.Balance, msg MessageFunc) DisplayBody {
	filtered := r.FilterNativeBalances(data)
	if len(filtered) == 0 {
		emit(msg, "vault holds no qualifying assets for "+r.Name)
		return DisplayBody{
			Name:        r.Name + " Vault",
			Image:       r.PlaceholderImage(),
			Description: r.Description,
		}
	}

	first := filtered[0]
	body := DisplayBody{
		Name:        first.Name,
		Image:       r.resolveImage(first.Image),
		ExternalURL: first.ExternalURL,
		Explorer:    first.ExternalURL,
	}
	if body.Name == "" {
		body.Name = r.Name + " #" + meta.TokenID
	}

	if info, ok := emblem.LookupAsset(first.Name); ok {
		if info.Video != "" {
			body.AnimationURL = info.Video
		}
		body.Description = fmt.Sprintf("%s - Series %d, Card %d. %s",
			info.ProjectName, info.Series, info.Order, r.Description)
	} else {
		body.Description = r.Description
	}

	// Embeddable content renders through animation_url instead of image.
	if body.AnimationURL == "" && media.IsEmbeddable(first.ContentType) {
		if first.ExternalURL != "" {
			body.AnimationURL = first.ExternalURL
		} else {
			body.AnimationURL = body.Image
		}
	}

	if r.hasLoadType("detailed") {
		body.Description = r.detailedDescription(filtered) + "\n" + body.Description
	} else {
		body.Description = fmt.Sprintf("%s: %s\n%s",
			first.Name, formatQuantity(first.Balance), body.Description)
	}

	return body
}

// resolveImage rewrites STAMP payloads to data URIs and applies the
// collection's image handler prefix to everything else.
func (r *BoundRule) resolveImage(image string) string {
	if image == "" {
		return r.LoadingImage()
	}
	if strings.HasPrefix(image, stampPrefix) {
		return "data:image/png:base64," + strings.TrimPrefix(image, stampPrefix)
	}
	if r.ImageHandler != "" && !strings.HasPrefix(image, "data:") {
		return r.ImageHandler + image
	}
	return image
}

// detailedDescription itemizes every balance on its own line.
func (r *BoundRule) detailedDescription(data []emblem.Balance) string {
	lines := make([]string, 0, len(data))
	for _, b := range data {
		name := b.Name
		if name == "" {
			name = b.Coin
		}
		lines = append(lines, fmt.Sprintf("%s x %s", name, formatQuantity(b.Balance)))
	}
	return strings.Join(lines, "\n")
}

func (r *BoundRule) hasLoadType(t string) bool {
	return containsString(r.LoadTypes, t)
}
