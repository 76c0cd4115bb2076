// Package listmetrics exports the state of a listcontainer.Container
// as Prometheus metrics.
package listmetrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/domonda/go-listcontainer"
)

var _ prometheus.Collector = new(Collector)

// Collector is a prometheus.Collector for one Container.
//
// It keeps a snapshot of the container that is updated
// by container listeners, so Collect can be called concurrently
// by a metrics handler without accessing the container
// that is not safe for concurrent use.
type Collector struct {
	mu              sync.Mutex
	visibleItems    int
	totalItems      int
	visibleProps    int
	itemSetChanges  map[listcontainer.ItemSetChange]uint64
	propertyChanges uint64

	visibleItemsDesc    *prometheus.Desc
	totalItemsDesc      *prometheus.Desc
	visiblePropsDesc    *prometheus.Desc
	itemSetChangesDesc  *prometheus.Desc
	propertyChangesDesc *prometheus.Desc

	detach func()
}

// NewCollector returns a Collector for c with metric names
// prefixed by namespace and the name of the container
// as constant "container" label.
//
// The collector registers listeners at c,
// call Close to remove them.
func NewCollector[T comparable](c *listcontainer.Container[T], namespace, name string) *Collector {
	labels := prometheus.Labels{"container": name}
	col := &Collector{
		itemSetChanges: make(map[listcontainer.ItemSetChange]uint64),
		visibleItemsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "container", "visible_items"),
			"Number of items passing all filters.",
			nil, labels,
		),
		totalItemsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "container", "items"),
			"Number of items including filtered out items.",
			nil, labels,
		),
		visiblePropsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "container", "visible_properties"),
			"Number of visible property ids.",
			nil, labels,
		),
		itemSetChangesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "container", "item_set_changes_total"),
			"Number of item set change events by kind of change.",
			[]string{"change"}, labels,
		),
		propertyChangesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "container", "property_set_changes_total"),
			"Number of property set change events.",
			nil, labels,
		),
	}
	col.update(c.Size(), c.NumItems(), len(c.PropertyIDs()))

	itemsListener := c.AddItemSetChangeListener(func(event listcontainer.ItemSetChangeEvent[T]) {
		col.mu.Lock()
		col.itemSetChanges[event.Change]++
		col.mu.Unlock()
		col.update(event.Container.Size(), event.Container.NumItems(), len(event.Container.PropertyIDs()))
	})
	propsListener := c.AddPropertySetChangeListener(func(event listcontainer.PropertySetChangeEvent[T]) {
		col.mu.Lock()
		col.propertyChanges++
		col.mu.Unlock()
		col.update(event.Container.Size(), event.Container.NumItems(), len(event.PropertyIDs))
	})
	col.detach = func() {
		c.RemoveItemSetChangeListener(itemsListener)
		c.RemovePropertySetChangeListener(propsListener)
	}
	return col
}

func (col *Collector) update(visibleItems, totalItems, visibleProps int) {
	col.mu.Lock()
	defer col.mu.Unlock()

	col.visibleItems = visibleItems
	col.totalItems = totalItems
	col.visibleProps = visibleProps
}

// Close removes the listeners from the container.
// The collector keeps reporting the last snapshot.
// Close must be called from the goroutine using the container.
func (col *Collector) Close() {
	if col.detach != nil {
		col.detach()
		col.detach = nil
	}
}

// Describe implements prometheus.Collector.
func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- col.visibleItemsDesc
	ch <- col.totalItemsDesc
	ch <- col.visiblePropsDesc
	ch <- col.itemSetChangesDesc
	ch <- col.propertyChangesDesc
}

// Collect implements prometheus.Collector.
func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	col.mu.Lock()
	defer col.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(col.visibleItemsDesc, prometheus.GaugeValue, float64(col.visibleItems))
	ch <- prometheus.MustNewConstMetric(col.totalItemsDesc, prometheus.GaugeValue, float64(col.totalItems))
	ch <- prometheus.MustNewConstMetric(col.visiblePropsDesc, prometheus.GaugeValue, float64(col.visibleProps))
	for change, count := range col.itemSetChanges {
		ch <- prometheus.MustNewConstMetric(col.itemSetChangesDesc, prometheus.CounterValue, float64(count), change.String())
	}
	ch <- prometheus.MustNewConstMetric(col.propertyChangesDesc, prometheus.CounterValue, float64(col.propertyChanges))
}
