package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brm5/taccom/internal/model"
)

// userctl manages the server users file directly. It is the only way
// to provision lieutenant accounts: self-registration accepts line
// platoons only.

func read(fn string) []*model.User {
	dat, err := os.ReadFile(fn)
	if err != nil {
		return nil
	}

	users := make([]*model.User, 0)
	if err := yaml.Unmarshal(dat, &users); err != nil {
		panic(err.Error())
	}

	return users
}

func write(fn string, users []*model.User) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}

	defer f.Close()

	enc := yaml.NewEncoder(f)

	return enc.Encode(users)
}

func readPassword() string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("password: ")
	p1, _ := reader.ReadString('\n')
	fmt.Print("repeat password: ")
	p2, _ := reader.ReadString('\n')

	if p1 != p2 {
		fmt.Println("\npassword mismatch")
		os.Exit(1)
	}

	return strings.TrimRight(p1, "\r\n")
}

func main() {
	file := flag.String("file", "users.yml", "users file")
	user := flag.String("user", "", "login to add or modify")
	passwd := flag.String("password", "", "new password")
	name := flag.String("name", "", "display name")
	platoon := flag.String("platoon", "", "platoon (RDPL GRPL BLPL LTPR LTPG LTPB)")
	disable := flag.Bool("disable", false, "disable the account")
	enable := flag.Bool("enable", false, "enable the account")
	flag.Parse()

	users := read(*file)

	if *user == "" {
		for _, u := range users {
			state := ""
			if u.Disabled {
				state = "disabled"
			}

			fmt.Printf("%s\t%s\t%s\t%s\t%s\n", u.Login, u.UID, u.Platoon, u.Name, state)
		}

		return
	}

	if *platoon != "" {
		p := model.Platoon(*platoon)

		if !p.Valid() || p == model.GENERAL {
			fmt.Println("invalid platoon " + *platoon)
			os.Exit(1)
		}
	}

	var found *model.User

	for _, u := range users {
		if u.Login == *user {
			found = u

			break
		}
	}

	if found == nil {
		if *platoon == "" {
			fmt.Println("platoon is required for a new user")
			os.Exit(1)
		}

		found = &model.User{Login: *user, UID: uuid.NewString()}
		users = append(users, found)

		if *passwd == "" {
			*passwd = readPassword()
		}
	}

	if *passwd != "" {
		if err := found.SetPassword(*passwd); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
	}

	if *name != "" {
		found.Name = *name
	}

	if *platoon != "" {
		found.Platoon = model.Platoon(*platoon)
	}

	if *disable {
		found.Disabled = true
	}

	if *enable {
		found.Disabled = false
	}

	if err := write(*file, users); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
