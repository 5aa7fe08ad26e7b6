package gostgithub

import (
	"context"

	"github.com/gobuffalo/envy"
	ghApi "github.com/google/go-github/v26/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/hostapklok/flare-bypasser/log"
	"github.com/hostapklok/flare-bypasser/models"
)

// Source reads gost release metadata from the GitHub release API.
type Source struct {
	Client *ghApi.Client
	Owner  string
	Repo   string
}

// CreateClient returns an authenticated client when GITHUB_TOKEN is set and
// an anonymous one otherwise. Anonymous access is enough for the two
// read-only calls the installer makes, the token only buys rate limit.
func CreateClient(ctx context.Context) *ghApi.Client {
	githubToken := envy.Get("GITHUB_TOKEN", "")
	if githubToken == "" {
		log.G(ctx).Debug("GITHUB_TOKEN not set, using anonymous client")
		return ghApi.NewClient(nil)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: githubToken},
	)
	return ghApi.NewClient(oauth2.NewClient(ctx, ts))
}

// ListVersions returns every published release, newest first, in the order
// the API reports them. An empty listing is an error: the installer cannot
// proceed without at least one version.
func (s *Source) ListVersions(ctx context.Context) ([]models.Release, error) {
	var releases []models.Release
	opt := &ghApi.ListOptions{PerPage: 100}
	for {
		page, resp, err := s.Client.Repositories.ListReleases(ctx, s.Owner, s.Repo, opt)
		if err != nil {
			return nil, errors.Wrapf(err, "listing releases for %s/%s", s.Owner, s.Repo)
		}
		for _, r := range page {
			releases = append(releases, convertRelease(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	if len(releases) == 0 {
		return nil, errors.Errorf("no releases published for %s/%s", s.Owner, s.Repo)
	}
	return releases, nil
}

// GetRelease fetches the full asset listing for one tag.
func (s *Source) GetRelease(ctx context.Context, tag string) (*models.Release, error) {
	r, _, err := s.Client.Repositories.GetReleaseByTag(ctx, s.Owner, s.Repo, tag)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching release %s of %s/%s", tag, s.Owner, s.Repo)
	}
	release := convertRelease(r)
	return &release, nil
}

func convertRelease(r *ghApi.RepositoryRelease) models.Release {
	release := models.Release{
		Tag:         r.GetTagName(),
		Prerelease:  r.GetPrerelease(),
		PublishedAt: r.GetPublishedAt().Time,
	}
	for _, a := range r.Assets {
		release.Assets = append(release.Assets, models.Asset{
			Name: a.GetName(),
			URL:  a.GetBrowserDownloadURL(),
			Size: int64(a.GetSize()),
		})
	}
	return release
}
