package main

import (
	"context"
	"fmt"

	"github.com/unicrm/unicli/core/user"
)

func (cli *commandLine) login(email, pwd string) error {
	err := cli.auth.Login(context.Background(), user.Login{Email: email, Password: pwd})
	if err != nil {
		return cli.printFieldErrors(err)
	}
	return cli.whoami()
}

func (cli *commandLine) register(first, last, email, role, pwd string) error {
	err := cli.auth.Register(context.Background(), user.Register{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  pwd,
		Role:      role,
	})
	if err != nil {
		return cli.printFieldErrors(err)
	}
	return nil
}

func (cli *commandLine) whoami() error {
	snap := cli.auth.Current()
	if !snap.IsAuthenticated {
		fmt.Fprintln(cli.out, "not logged in")
		return nil
	}
	fmt.Fprintf(cli.out, "%s <%s> (%s)\n", snap.User.FullName(), snap.User.Email, snap.User.Role)
	return nil
}
