package curriculum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// HTTPProvider 远端院系服务提供方
// 按 GET {base}/api/requirements/{major} 查询培养方案
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPProvider 创建远端提供方
func NewHTTPProvider(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Requirements 查询远端院系服务
func (p *HTTPProvider) Requirements(ctx context.Context, major string) (*Degree, error) {
	endpoint := fmt.Sprintf("%s/api/requirements/%s", p.baseURL, url.PathEscape(major))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构造培养方案请求失败: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("培养方案服务请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMajorNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("培养方案服务返回异常状态码 %d", resp.StatusCode)
	}

	var degree Degree
	if err := json.NewDecoder(resp.Body).Decode(&degree); err != nil {
		return nil, fmt.Errorf("培养方案响应解析失败: %w", err)
	}

	// 远端对未知专业返回空对象而不是 404
	if len(degree.CoreCourses) == 0 && degree.TotalCredits == 0 {
		return nil, ErrMajorNotFound
	}

	if degree.Major == "" {
		degree.Major = major
	}

	p.logger.Debug("培养方案远端查询成功",
		zap.String("major", major),
		zap.Int("core_courses", len(degree.CoreCourses)))

	return &degree, nil
}
