package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PostsProcessedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_processed_total",
			Help: "Total de posts processados pelo pipeline",
		},
	)
	ProductsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "products_accepted_total",
			Help: "Total de produtos que passaram o filtro de preço",
		},
	)
	ExtractionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total de falhas de extração (API ou parse)",
		},
	)
	ImageFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "image_fallbacks_total",
			Help: "Total de imagens que caíram no fallback para a URL original",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(
		PostsProcessedTotal,
		ProductsAcceptedTotal,
		ExtractionFailuresTotal,
		ImageFallbacksTotal,
	)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
