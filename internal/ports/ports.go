package ports

import (
    "errors"
    "fmt"
    "net"
    "strconv"
    "syscall"
)

func FindFreePort() (int, error) {
    l, err := net.Listen("tcp", "127.0.0.1:0")
    if err != nil {
        return 0, fmt.Errorf("listen: %w", err)
    }
    defer l.Close()
    return l.Addr().(*net.TCPAddr).Port, nil
}

// Listen binds addr. When its port is taken, up to tries following ports
// are attempted in order.
func Listen(addr string, tries int) (net.Listener, error) {
    host, portStr, err := net.SplitHostPort(addr)
    if err != nil {
        return nil, fmt.Errorf("bad address %q: %w", addr, err)
    }
    port, err := strconv.Atoi(portStr)
    if err != nil {
        return nil, fmt.Errorf("bad port %q: %w", portStr, err)
    }
    if port == 0 {
        tries = 0
    }
    var last error
    for i := 0; i <= tries && port+i <= 65535; i++ {
        ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port+i)))
        if err == nil {
            return ln, nil
        }
        last = err
        if !errors.Is(err, syscall.EADDRINUSE) {
            break
        }
    }
    return nil, fmt.Errorf("listen %s: %w", addr, last)
}
