package frontend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/desk/viewmodel"
	"orderdesk/pkg/logging"
)

// Console is the line-oriented terminal binding over the view-models. It
// parses commands, dispatches them to the active screen and echoes status
// changes pushed by the view-models. It holds no entity state of its own.
type Console struct {
	in     io.Reader
	logger *logging.ZapLogger

	outMux sync.Mutex
	out    io.Writer

	clients  *viewmodel.ViewModel[apiprotocol.Client]
	products *viewmodel.ViewModel[apiprotocol.Product]
	orders   *viewmodel.ViewModel[apiprotocol.Order]
	items    *viewmodel.OrderProductsViewModel

	active      Screen
	unsubscribe func()
}

func NewConsole(
	in io.Reader,
	out io.Writer,
	clients *viewmodel.ViewModel[apiprotocol.Client],
	products *viewmodel.ViewModel[apiprotocol.Product],
	orders *viewmodel.ViewModel[apiprotocol.Order],
	items *viewmodel.OrderProductsViewModel,
	logger *logging.ZapLogger,
) *Console {
	c := &Console{
		in:       in,
		out:      out,
		logger:   logger,
		clients:  clients,
		products: products,
		orders:   orders,
		items:    items,
	}
	c.activate(NewClientsScreen(clients))
	return c
}

// Run reads commands until EOF, "quit" or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.printf("order desk console, type 'help' for commands\n")
	c.printf("screen: %s\n", c.active.Name())

	scanner := bufio.NewScanner(c.in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.printf("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		c.dispatch(ctx, line)
	}
	return scanner.Err()
}

func (c *Console) dispatch(ctx context.Context, line string) {
	args := strings.Fields(line)
	cmd := args[0]

	c.logger.DebugCtx(ctx, "console command", zap.String("command", cmd))

	switch cmd {
	case "help":
		c.printHelp()
	case "clients":
		c.activate(NewClientsScreen(c.clients))
		c.printf("screen: %s\n", c.active.Name())
	case "products":
		c.activate(NewProductsScreen(c.products))
		c.printf("screen: %s\n", c.active.Name())
	case "orders":
		c.activate(NewOrdersScreen(c.orders))
		c.printf("screen: %s\n", c.active.Name())
	case "items":
		if len(args) != 2 {
			c.printf("usage: items <orderID>\n")
			return
		}
		orderID, err := strconv.Atoi(args[1])
		if err != nil || orderID <= 0 {
			c.printf("usage: items <orderID>\n")
			return
		}
		c.activate(NewItemsScreen(c.items, orderID))
		c.printf("screen: %s\n", c.active.Name())
	case "load":
		c.active.Load()
	case "create":
		c.active.Create()
	case "update":
		c.active.Update()
	case "delete":
		c.active.Delete()
	case "select":
		if len(args) != 2 {
			c.printf("usage: select <row>\n")
			return
		}
		row, err := strconv.Atoi(args[1])
		if err != nil || !c.active.SelectRow(row) {
			c.printf("no row %s\n", args[1])
			return
		}
		c.showForm()
	case "deselect":
		c.active.Deselect()
		c.showForm()
	case "set":
		if len(args) < 2 {
			c.printf("usage: set <field> [value]\n")
			return
		}
		value := strings.Join(args[2:], " ")
		c.active.SetField(args[1], value)
	case "show":
		c.show()
	default:
		c.printf("unknown command %q, type 'help'\n", cmd)
	}
}

func (c *Console) activate(screen Screen) {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.active = screen
	c.unsubscribe = screen.StatusCell().Subscribe(func(status string) {
		if status != "" {
			c.printf("[%s] %s\n", screen.Name(), status)
		}
	})
}

func (c *Console) show() {
	c.showList()
	c.showForm()
	if status := c.active.Status(); status != "" {
		c.printf("status: %s\n", status)
	}
}

func (c *Console) showList() {
	c.outMux.Lock()
	defer c.outMux.Unlock()

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%s\n", strings.Join(c.active.Columns(), "\t"))
	for i, row := range c.active.Rows() {
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func (c *Console) showForm() {
	c.outMux.Lock()
	defer c.outMux.Unlock()

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, name := range c.active.FieldNames() {
		fmt.Fprintf(tw, "%s\t= %s\n", name, c.active.Field(name))
	}
	tw.Flush()
	fmt.Fprintf(c.out, "selection: %v\n", c.active.HasSelection())
}

func (c *Console) printHelp() {
	c.printf(`commands:
  clients | products | orders | items <orderID>   switch screen
  load                                            fetch the list
  select <row> | deselect                         pick a list row
  set <field> [value]                             edit a form field
  create | update | delete                        run the operation
  show                                            print list, form, status
  quit                                            leave
`)
}

func (c *Console) printf(format string, args ...any) {
	c.outMux.Lock()
	defer c.outMux.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
