//go:build !windows && !plan9

package logging

import (
	"io"
	"log/syslog"
)

func openSyslog(program string) (io.WriteCloser, error) {
	w, err := syslog.New(syslog.LOG_AUTHPRIV|syslog.LOG_INFO, program)
	if err != nil {
		return nil, err
	}
	return w, nil
}
