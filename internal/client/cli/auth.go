package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. A rejection is
// shown with the server's own message and leaves the session anonymous.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password: ", os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.auth.Login(ctx, username, string(password)); err != nil {
		fmt.Println("Login failed:", err)
		return nil
	}

	fmt.Println("Login successful")
	return nil
}

// Logout notifies the server best-effort and clears the local session either way.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("You are not logged in.")
		return nil
	}
	a.auth.Logout(ctx)
	fmt.Println("Logged out")
	return nil
}

func (a *App) WhoAmI() {
	s := a.auth.Session()
	if !s.LoggedIn() {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s (%s)\n", s.User().Username, s.Role())
}

// wipe zeroes a password buffer once it is no longer needed.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
