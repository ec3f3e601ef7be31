package scenario

// Default returns the built-in demo scenario: a small workstation tree with
// enough material to exercise every text tool, plus a few planted marker
// tokens for the discovery hook.
func Default() *Scenario {
	return &Scenario{
		Session: Session{
			User: "trainee",
			Host: "labbox",
			Home: "/home/trainee",
		},
		Briefing: defaultBriefing,
		Dirs: []Dir{
			{Path: "/var/log"},
			{Path: "/usr/bin"},
		},
		Files: []File{
			{Path: "/home/trainee/notes.txt", Content: "alpha\nbeta\nalpha\n"},
			{Path: "/home/trainee/inventory.csv", Content: "id,part,qty\n101,relay,4\n102,fuse,12\n103,relay,9\n"},
			{Path: "/home/trainee/report.b64", Content: "dXBsaW5rIHRva2VuIFtVUExJTkstVE9LRU4tMzM0MV0K\n"},
			{Path: "/home/trainee/.plan", Content: "Mondays: rotate the lab keys.\n"},
			{
				Path: "/var/log/auth.log",
				Content: "Mar  4 08:58:01 labbox sshd[812]: Accepted password for trainee from 10.0.2.2 port 51012\n" +
					"Mar  4 09:02:17 labbox sshd[812]: Failed password for root from 203.0.113.44 port 4421\n" +
					"Mar  4 09:02:19 labbox sshd[812]: Failed password for root from 203.0.113.44 port 4421\n" +
					"Mar  4 09:02:24 labbox sshd[812]: Failed password for admin from 203.0.113.44 port 4421\n" +
					"Mar  4 09:11:40 labbox CRON[1337]: (root) CMD (/opt/sync/beacon.sh)\n",
			},
			{Path: "/etc/passwd", Content: "root:x:0:0:root:/root:/bin/bash\ntrainee:x:1000:1000::/home/trainee:/bin/bash\n"},
			{Path: "/etc/hostname", Content: "labbox\n"},
			{
				Path:       "/opt/sync/beacon.sh",
				Content:    "#!/bin/sh\n# keepalive [BEACON-KEY-9917]\ncurl -s http://203.0.113.44:4421/ping\n",
				Suspicious: true,
			},
		},
	}
}

const defaultBriefing = `# Text tools lab

Welcome to your simulated workstation. Nothing here touches a real
system, so explore freely.

Suggested warm-up:

1. ` + "`ls -la`" + ` and ` + "`cat notes.txt`" + ` to look around.
2. ` + "`grep -n alpha notes.txt`" + `, then ` + "`sort -u notes.txt`" + `.
3. ` + "`cut -f2 -d, inventory.csv`" + ` and ` + "`uniq -c`" + ` over the result file.
4. Something ran from cron this morning. ` + "`grep -r CRON /var/log`" + `
   and follow the trail.

Press Tab to complete commands, flags and paths. Type ` + "`help`" + `
for the full catalog.
`
