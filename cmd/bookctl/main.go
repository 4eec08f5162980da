// Command bookctl drives a single in-memory order book interactively
// from stdin, for manual exploration and scripted smoke tests.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sjanney/orderbook/config"
	"github.com/sjanney/orderbook/pkg/backend/memory"
	"github.com/sjanney/orderbook/pkg/core"
	"github.com/sjanney/orderbook/pkg/logging"
	"github.com/sjanney/orderbook/pkg/otel"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogFormat == "pretty",
	})

	var traceWriter io.Writer
	if cfg.TraceOutput != "" {
		f, err := os.OpenFile(cfg.TraceOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Msg("open trace output")
		}
		defer f.Close()
		traceWriter = f
	}

	shutdown, err := otel.Init(otel.Config{
		Writer:         traceWriter,
		MetricInterval: cfg.MetricsInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init telemetry")
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
	}()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.MetricsInterval)
		defer shutdownCancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("telemetry shutdown")
		}
	}()

	book := core.NewOrderBook(memory.NewMemoryBackend())
	metrics := otel.GetOrderBookMetrics()

	fmt.Println("bookctl ready. Commands: ADD <id> BUY|SELL GTC|FAK <price> <qty> | CANCEL <id> | MODIFY <id> BUY|SELL <price> <qty> | DEPTH | SIZE | QUIT")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd := strings.ToUpper(fields[0])

		switch cmd {
		case "ADD":
			runAdd(ctx, book, metrics, fields[1:])
		case "CANCEL":
			runCancel(ctx, book, metrics, fields[1:])
		case "MODIFY":
			runModify(ctx, book, metrics, fields[1:])
		case "DEPTH":
			printDepth(book)
		case "SIZE":
			fmt.Println(book.Size())
		case "QUIT", "EXIT":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func runAdd(ctx context.Context, book *core.OrderBook, metrics *otel.OrderBookMetrics, args []string) {
	if len(args) != 5 {
		fmt.Println("usage: ADD <id> BUY|SELL GTC|FAK <price> <qty>")
		return
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid id:", err)
		return
	}
	side, err := parseSide(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	orderType, err := parseOrderType(args[2])
	if err != nil {
		fmt.Println(err)
		return
	}
	price, err := strconv.ParseInt(args[3], 10, 32)
	if err != nil {
		fmt.Println("invalid price:", err)
		return
	}
	qty, err := strconv.ParseUint(args[4], 10, 64)
	if err != nil {
		fmt.Println("invalid quantity:", err)
		return
	}

	order, err := core.NewOrder(core.OrderId(id), side, orderType, core.Price(price), core.Quantity(qty))
	if err != nil {
		fmt.Println("invalid order:", err)
		return
	}

	sizeBefore := book.Size()

	_, span := otel.StartOrderSpan(ctx, otel.SpanAddOrder,
		attribute.Int64(otel.AttributeOrderID, int64(order.ID())),
		attribute.String(otel.AttributeOrderSide, order.Side().String()),
	)
	trades := book.AddOrder(order)
	span.End()

	if trades == nil {
		if book.Size() == sizeBefore {
			metrics.RecordRejected(ctx, "duplicate-id-or-fak-no-cross")
			fmt.Println("rejected")
			return
		}
		metrics.RecordAdmitted(ctx, order.Side().String())
		fmt.Println("admitted, no trades")
		return
	}

	metrics.RecordAdmitted(ctx, order.Side().String())
	var qtySum int64
	for _, tr := range trades {
		qtySum += int64(tr.Bid.Quantity)
	}
	metrics.RecordTrades(ctx, len(trades), qtySum, sizeBefore+1-book.Size())

	for _, tr := range trades {
		fmt.Printf("trade: bid=%d@%d ask=%d@%d qty=%d\n", tr.Bid.OrderID, tr.Bid.Price, tr.Ask.OrderID, tr.Ask.Price, tr.Bid.Quantity)
	}
}

func runCancel(ctx context.Context, book *core.OrderBook, metrics *otel.OrderBookMetrics, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: CANCEL <id>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid id:", err)
		return
	}

	sizeBefore := book.Size()
	_, span := otel.StartOrderSpan(ctx, otel.SpanCancelOrder, attribute.Int64(otel.AttributeOrderID, int64(id)))
	book.CancelOrder(core.OrderId(id))
	span.End()

	if book.Size() < sizeBefore {
		metrics.RecordCanceled(ctx)
	}
	fmt.Println("canceled")
}

func runModify(ctx context.Context, book *core.OrderBook, metrics *otel.OrderBookMetrics, args []string) {
	if len(args) != 4 {
		fmt.Println("usage: MODIFY <id> BUY|SELL <price> <qty>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid id:", err)
		return
	}
	side, err := parseSide(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	price, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil {
		fmt.Println("invalid price:", err)
		return
	}
	qty, err := strconv.ParseUint(args[3], 10, 64)
	if err != nil {
		fmt.Println("invalid quantity:", err)
		return
	}

	sizeBefore := book.Size()
	_, span := otel.StartOrderSpan(ctx, otel.SpanModifyOrder, attribute.Int64(otel.AttributeOrderID, int64(id)))
	trades := book.ModifyOrder(core.OrderModify{ID: core.OrderId(id), Side: side, Price: core.Price(price), Quantity: core.Quantity(qty)})
	span.End()
	removed := sizeBefore - book.Size()

	if len(trades) == 0 {
		metrics.RecordTrades(ctx, 0, 0, removed)
		fmt.Println("modified, no trades")
		return
	}
	var qtySum int64
	for _, tr := range trades {
		qtySum += int64(tr.Bid.Quantity)
	}
	metrics.RecordTrades(ctx, len(trades), qtySum, removed)
	for _, tr := range trades {
		fmt.Printf("trade: bid=%d@%d ask=%d@%d qty=%d\n", tr.Bid.OrderID, tr.Bid.Price, tr.Ask.OrderID, tr.Ask.Price, tr.Bid.Quantity)
	}
}

func printDepth(book *core.OrderBook) {
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	bids, asks := book.GetOrderInfos()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\t%s\t%s\n", cyan("PRICE"), cyan("QTY"), cyan("SIDE"))
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%d\t%d\t%s\n", asks[i].Price, asks[i].Quantity, red("ASK"))
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", "---", "---", "---")
	for _, level := range bids {
		fmt.Fprintf(w, "%d\t%d\t%s\n", level.Price, level.Quantity, cyan("BID"))
	}
	w.Flush()
}

func parseSide(s string) (core.Side, error) {
	switch strings.ToUpper(s) {
	case "BUY":
		return core.Buy, nil
	case "SELL":
		return core.Sell, nil
	default:
		return 0, fmt.Errorf("invalid side %q, want BUY or SELL", s)
	}
}

func parseOrderType(s string) (core.OrderType, error) {
	switch strings.ToUpper(s) {
	case "GTC":
		return core.GoodTilCancel, nil
	case "FAK":
		return core.FillAndKill, nil
	default:
		return 0, fmt.Errorf("invalid order type %q, want GTC or FAK", s)
	}
}
