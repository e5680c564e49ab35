package global

import (
	"github.com/busrute/busrute/pkg/config"
	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/source/cachedresults"
	kakaosource "github.com/busrute/busrute/pkg/dataaggregator/source/kakao"
	odsaysource "github.com/busrute/busrute/pkg/dataaggregator/source/odsay"
	"github.com/busrute/busrute/pkg/kakao"
	"github.com/busrute/busrute/pkg/odsay"
	"github.com/busrute/busrute/pkg/redis_client"
	"github.com/rs/zerolog/log"
)

// Setup replaces the global aggregator with the configured providers. Place
// results are cached only when redis_client has already been connected.
func Setup(cfg *config.Config) {
	dataaggregator.GlobalAggregator = &dataaggregator.Aggregator{}

	if cfg.ODsay.APIKey == "" {
		log.Warn().Msg("ODsay API key not set, trip planning requests will be rejected")
	}

	dataaggregator.GlobalAggregator.RegisterSource(odsaysource.Source{
		Client: odsay.NewClient(cfg.ODsay.BaseURL, cfg.ODsay.APIKey, cfg.ODsay.Timeout),
	})

	kakaoSource := kakaosource.Source{
		Client: kakao.NewClient(cfg.Kakao.BaseURL, cfg.Kakao.RESTKey, cfg.Kakao.Timeout),
	}
	if redis_client.Client != nil {
		kakaoSource.Cache = &cachedresults.Cache{}
		kakaoSource.Cache.Setup(redis_client.Client, cfg.Redis.CacheTTL)
	}
	dataaggregator.GlobalAggregator.RegisterSource(kakaoSource)
}
