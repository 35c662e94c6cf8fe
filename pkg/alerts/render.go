package alerts

import (
	"fmt"
	"strings"

	"github.com/adi1913/competitor-tracker/pkg/model"
)

// RenderPriceDrop formats a price-drop event as a notification.
// Rendering is a pure function of the event, so identical events always
// produce identical text.
func RenderPriceDrop(e model.PriceDropEvent) Notification {
	var b strings.Builder
	b.WriteString("Price Drop Detected\n\n")
	fmt.Fprintf(&b, "Product: %s\n", e.ProductKey)
	fmt.Fprintf(&b, "Old Price: %.2f\n", e.OldPrice)
	fmt.Fprintf(&b, "New Price: %.2f\n", e.NewPrice)
	fmt.Fprintf(&b, "Drop: %.2f%%\n", e.DropPercent)
	if e.URL != "" {
		fmt.Fprintf(&b, "\nView Product: %s\n", e.URL)
	}
	b.WriteString("\nCheck competitor site immediately.\n")

	return Notification{
		Subject: fmt.Sprintf("Price Drop: %s", e.ProductKey),
		Body:    b.String(),
	}
}

// RenderNegativeBatch formats a negative-review batch as a single
// notification carrying the count and one representative review.
func RenderNegativeBatch(batch model.NegativeReviewBatch) Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d new negative reviews.\n\n", batch.Count)
	b.WriteString("Example:\n")
	fmt.Fprintf(&b, "Product: %s\n", batch.Sample.ProductKey)
	fmt.Fprintf(&b, "Review: %s\n", batch.Sample.Text)
	if batch.Sample.Rating != nil {
		fmt.Fprintf(&b, "Rating: %d\n", *batch.Sample.Rating)
	}
	b.WriteString("\nCheck the full review report for details.\n")

	return Notification{
		Subject: "Negative Reviews Detected",
		Body:    b.String(),
	}
}
