package azure

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/bnema/pfconn/internal/domain"
)

const cosmosAPIVersion = "2018-12-31"

var errCosmosKeyOverHTTP = errors.New("cosmos key authentication requires an https endpoint")

type cosmosTarget struct {
	endpoint    string
	databaseID  string
	containerID string
	key         string
}

func cosmosTargetFrom(conn domain.Connection) (cosmosTarget, bool) {
	target := cosmosTarget{
		endpoint:    conn.Configs["endpoint"],
		databaseID:  conn.Configs["databaseId"],
		containerID: conn.Configs["containerId"],
		key:         conn.Secrets["key"],
	}
	if target.endpoint == "" || target.databaseID == "" || target.containerID == "" || target.key == "" {
		return cosmosTarget{}, false
	}

	return target, true
}

func (v *Verifier) probeCosmos(ctx context.Context, target cosmosTarget) error {
	key, err := base64.StdEncoding.DecodeString(target.key)
	if err != nil {
		return fmt.Errorf("decode cosmos account key: %w", err)
	}

	resourceLink := "dbs/" + target.databaseID + "/colls/" + target.containerID
	signer := &cosmosKeyPolicy{
		key:          key,
		resourceType: "colls",
		resourceLink: resourceLink,
		now:          v.opts.Now,
		allowHTTP:    v.opts.AllowHTTP,
	}

	return v.get(ctx, target.endpoint, "/"+resourceLink, url.Values{}, signer)
}

// cosmosKeyPolicy signs requests with a Cosmos DB master key.
type cosmosKeyPolicy struct {
	key          []byte
	resourceType string
	resourceLink string
	now          func() time.Time
	allowHTTP    bool
}

func (p *cosmosKeyPolicy) Do(req *policy.Request) (*http.Response, error) {
	if !p.allowHTTP && !strings.EqualFold(req.Raw().URL.Scheme, "https") {
		return nil, errCosmosKeyOverHTTP
	}

	date := p.now().UTC().Format(http.TimeFormat)
	signature := cosmosSignature(p.key, req.Raw().Method, p.resourceType, p.resourceLink, date)

	header := req.Raw().Header
	header.Set("x-ms-date", date)
	header.Set("x-ms-version", cosmosAPIVersion)
	header.Set("Authorization", url.QueryEscape("type=master&ver=1.0&sig="+signature))

	return req.Next()
}

func cosmosSignature(key []byte, method, resourceType, resourceLink, date string) string {
	payload := strings.ToLower(method) + "\n" +
		strings.ToLower(resourceType) + "\n" +
		resourceLink + "\n" +
		strings.ToLower(date) + "\n" +
		"\n"

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
